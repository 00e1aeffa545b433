package depot

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"
)

// sumTolerance is the slack allowed on the "percentages sum to 100"
// invariant, generous enough to absorb decades of float rounding in legacy
// data files.
const sumTolerance = 0.01

// Ledger tracks fractional ownership of the portfolio across stakeholders,
// together with the append-only log of the cash transactions that shaped it.
//
// The stored percentages are the current state: loading a ledger never
// replays its log. The log is history, kept for audit and display.
type Ledger struct {
	currency     string
	stakes       map[string]Percent
	transactions []Transaction
}

// NewLedger creates a ledger from a stakeholder -> percent points mapping.
func NewLedger(currency string, stakes map[string]Percent) *Ledger {
	l := &Ledger{
		currency: currency,
		stakes:   make(map[string]Percent, len(stakes)),
	}
	maps.Copy(l.stakes, stakes)
	return l
}

// Currency returns the ledger's currency.
func (l *Ledger) Currency() string { return l.currency }

// Percentage returns a stakeholder's current percentage.
func (l *Ledger) Percentage(stakeholder string) (Percent, bool) {
	p, ok := l.stakes[stakeholder]
	return p, ok
}

// Has reports whether the stakeholder exists in the ledger.
func (l *Ledger) Has(stakeholder string) bool {
	_, ok := l.stakes[stakeholder]
	return ok
}

// Stakeholders iterates over stakeholder names in sorted order.
func (l *Ledger) Stakeholders() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range slices.Sorted(maps.Keys(l.stakes)) {
			if !yield(name) {
				return
			}
		}
	}
}

// Transactions returns an iterator over the transaction log, in the order
// the transactions were recorded.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// append adds transactions to the log and keeps it in chronological order.
// The sort is stable: transactions on the same day keep their relative order.
func (l *Ledger) append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Check validates the ledger's stakes: every percentage in [0, 100] and the
// sum close to 100. A ledger failing Check is reportable but still usable
// for display; Apply is the operation that demands a consistent ledger.
func (l *Ledger) Check() error {
	var sum float64
	for name, p := range l.stakes {
		if err := p.Check(); err != nil {
			return fmt.Errorf("stakeholder %q: %w", name, err)
		}
		sum += float64(p)
	}
	if len(l.stakes) > 0 && (sum < 100-sumTolerance || sum > 100+sumTolerance) {
		return fmt.Errorf("stakeholder percentages sum to %.4f, want 100", sum)
	}
	return nil
}

// Apply rebalances the ledger for a cash transaction and appends it to the
// log. It returns the new total portfolio value.
//
// The rebalancing rule: the acting stakeholder's monetary stake changes by
// the transaction amount, every other stakeholder's monetary stake is held
// constant, and all percentages are recomputed against the new total. A
// contribution therefore dilutes everyone else's percentage without touching
// their money.
//
// total must be strictly positive, the transaction must not drive the new
// total to zero or below, and a withdrawal must not exceed the acting
// stakeholder's own stake; all three cases are rejected with
// ErrInvalidTransaction before any state changes.
func (l *Ledger) Apply(total Money, tx Transaction) (Money, error) {
	name := tx.Who()
	p, ok := l.stakes[name]
	if !ok {
		return Money{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if !total.IsPositive() {
		return Money{}, fmt.Errorf("%w: total portfolio value %s is not positive", ErrInvalidTransaction, total)
	}

	amount := tx.Flow()
	newTotal := total.Add(amount)
	if !newTotal.IsPositive() {
		return Money{}, fmt.Errorf("%w: amount %s would drive the portfolio value to %s", ErrInvalidTransaction, amount, newTotal)
	}

	// The acting stakeholder's stake moves by the amount, everyone else's
	// stays constant in money terms. A withdrawal beyond the actor's own
	// stake would push them below 0% and everyone else above 100%.
	after := total.Share(p).Add(amount)
	if after.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount %s exceeds %s's stake of %s", ErrInvalidTransaction, amount, name, total.Share(p))
	}
	for other, q := range l.stakes {
		if other == name {
			l.stakes[other] = after.PercentOf(newTotal)
		} else {
			l.stakes[other] = total.Share(q).PercentOf(newTotal)
		}
	}

	l.append(tx)
	return newTotal, nil
}

// snapshot returns a deep copy of the ledger, used to roll back a failed
// persist.
func (l *Ledger) snapshot() *Ledger {
	c := NewLedger(l.currency, l.stakes)
	c.transactions = slices.Clone(l.transactions)
	return c
}

// restore copies the state of a snapshot back into the ledger.
func (l *Ledger) restore(snap *Ledger) {
	l.currency = snap.currency
	l.stakes = make(map[string]Percent, len(snap.stakes))
	maps.Copy(l.stakes, snap.stakes)
	l.transactions = snap.transactions
}
