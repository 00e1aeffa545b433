// Package cmd implements the CLI application to manage the family depot.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/depot"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare subcommands, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dailyCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&balancesCmd{}, "reports")

	c.Register(&txCmd{}, "ledger")
	c.Register(&logCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "depot.toml", "Path to the configuration file (TOML format)")

// LoadConfig loads the app configuration file.
func LoadConfig() (*depot.Config, error) {
	return depot.LoadConfig(*configFile)
}

// OpenStore opens the ledger store declared in the configuration and loads the
// ledger. A missing file silently falls back to the configured stakeholders; a
// broken one is reported but does not abort, so reports stay available.
func OpenStore(cfg *depot.Config) (*depot.Store, *depot.Ledger) {
	store := depot.NewStore(cfg.LedgerFile, cfg.FallbackLedger())
	ledger, err := store.Load()
	if err != nil {
		log.Printf("warning: %v", err)
	}
	return store, ledger
}

// FetchMarket fetches daily prices for all configured positions over a date
// range, plus the latest intraday quotes. Per-symbol failures are logged and
// the report goes on with whatever arrived.
func FetchMarket(cfg *depot.Config, from, to depot.Date) *depot.MarketData {
	market := depot.NewMarketData()
	p := cfg.Portfolio()
	if err := market.UpdateDaily(cfg.EodhdKey, p.Tickers(), from, to); err != nil {
		log.Printf("warning: %v", err)
	}
	if err := market.UpdateIntraday(p.Positions); err != nil {
		log.Printf("warning: %v", err)
	}
	return market
}

// parseDateFlag parses a -d flag value, defaulting to today when empty.
func parseDateFlag(value string) (depot.Date, error) {
	if value == "" {
		return depot.Today(), nil
	}
	return depot.ParseDate(value)
}

// usageError prints an error and returns the usage exit status.
func usageError(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}
