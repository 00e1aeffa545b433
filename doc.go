// Package depot provides the functions and types to value a small family
// stock portfolio and to keep track of who owns which fraction of it. It is
// designed to be local-first and auditable: all state lives in small,
// human-readable files under the user's control.
//
// The core functionalities include:
//   - Valuation Engine: computing the portfolio's total market value from
//     externally supplied prices, a stakeholder's monetary share of it, and
//     the reconstruction of historical value series with forward-filled
//     prices.
//   - Ownership Ledger: recording cash contributions and withdrawals in an
//     append-only log, and rebalancing every stakeholder's percentage so
//     that a transaction by one party never changes the monetary stake of
//     the others.
//   - Market Data Integration: fetching daily and intraday quotes from
//     external providers, tolerating missing symbols and partial coverage.
//   - Data Persistence: encoding and decoding the ownership state to a
//     human-readable, version-controllable JSONL file, replaced atomically
//     on every mutation.
//
// This package serves as the foundational logic for the `depot` command-line
// tool.
package depot
