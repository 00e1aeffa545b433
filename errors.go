package depot

import "errors"

// The error taxonomy of the ledger. Missing market data is never an error:
// an unpriced position simply contributes nothing to a valuation.
var (
	// ErrNotFound reports a transaction naming a stakeholder that does not
	// exist in the ledger.
	ErrNotFound = errors.New("unknown stakeholder")

	// ErrInvalidTransaction reports a transaction that would leave the
	// ledger in an undefined state, like a withdrawal larger than the
	// portfolio itself.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrPersistence reports that the ledger could not be written to disk.
	// The in-memory ledger is rolled back when it is returned.
	ErrPersistence = errors.New("cannot persist ledger")
)
