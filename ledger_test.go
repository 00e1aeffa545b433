package depot

import (
	"errors"
	"testing"
)

func testLedger() *Ledger {
	return NewLedger("EUR", map[string]Percent{"alice": 60, "bob": 40})
}

func TestApplyDeposit(t *testing.T) {
	ledger := testLedger()
	total := M(1000, "EUR")

	tx := NewDeposit(NewDate(2025, 8, 1), "", "alice", M(500, "EUR"))
	newTotal, err := ledger.Apply(total, tx)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if want := M(1500, "EUR"); !newTotal.Equal(want) {
		t.Errorf("new total = %v, want %v", newTotal, want)
	}
	// alice held 600, deposited 500: 1100 of 1500.
	alice, _ := ledger.Percentage("alice")
	if want := Percent(1100.0 / 1500.0 * 100); !alice.Equal(want) {
		t.Errorf("alice = %v, want %v", alice, want)
	}
	// bob's 400 is untouched but now weighs less.
	bob, _ := ledger.Percentage("bob")
	if want := Percent(400.0 / 1500.0 * 100); !bob.Equal(want) {
		t.Errorf("bob = %v, want %v", bob, want)
	}
	if err := ledger.Check(); err != nil {
		t.Errorf("Check() after deposit = %v", err)
	}

	var count int
	for range ledger.Transactions() {
		count++
	}
	if count != 1 {
		t.Errorf("transaction log has %d entries, want 1", count)
	}
}

func TestApplyWithdraw(t *testing.T) {
	ledger := testLedger()

	tx := NewWithdraw(NewDate(2025, 8, 1), "", "alice", M(300, "EUR"))
	newTotal, err := ledger.Apply(M(1000, "EUR"), tx)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if want := M(700, "EUR"); !newTotal.Equal(want) {
		t.Errorf("new total = %v, want %v", newTotal, want)
	}
	alice, _ := ledger.Percentage("alice")
	if want := Percent(300.0 / 700.0 * 100); !alice.Equal(want) {
		t.Errorf("alice = %v, want %v", alice, want)
	}
	bob, _ := ledger.Percentage("bob")
	if want := Percent(400.0 / 700.0 * 100); !bob.Equal(want) {
		t.Errorf("bob = %v, want %v", bob, want)
	}
}

// TestApplyPreservesOtherStakes asserts the core rebalancing property: a
// transaction by one stakeholder never changes another's monetary stake.
func TestApplyPreservesOtherStakes(t *testing.T) {
	ledger := NewLedger("EUR", map[string]Percent{"alice": 50, "bob": 30, "carol": 20})
	total := M(2000, "EUR")

	bobBefore := total.Share(30)
	carolBefore := total.Share(20)

	newTotal, err := ledger.Apply(total, NewDeposit(Today(), "", "alice", M(750, "EUR")))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	bob, _ := ledger.Percentage("bob")
	if got := newTotal.Share(bob); !moneyClose(got, bobBefore) {
		t.Errorf("bob's stake = %v, want %v", got, bobBefore)
	}
	carol, _ := ledger.Percentage("carol")
	if got := newTotal.Share(carol); !moneyClose(got, carolBefore) {
		t.Errorf("carol's stake = %v, want %v", got, carolBefore)
	}
}

// moneyClose reports whether two amounts are within a cent of each other.
// Percentages go through a float conversion, so reassembled stakes can be off
// by far less than a cent but still not be decimal-equal.
func moneyClose(a, b Money) bool {
	diff := a.Sub(b)
	if diff.IsNegative() {
		diff = diff.Neg()
	}
	return diff.LessThan(M(0.01, a.Currency()))
}

func TestApplyUnknownStakeholder(t *testing.T) {
	ledger := testLedger()

	_, err := ledger.Apply(M(1000, "EUR"), NewDeposit(Today(), "", "mallory", M(10, "EUR")))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Apply() error = %v, want ErrNotFound", err)
	}
	assertUnchanged(t, ledger)
}

func TestApplyOverdraw(t *testing.T) {
	ledger := testLedger()

	tx := NewWithdraw(Today(), "", "alice", M(2000, "EUR"))
	_, err := ledger.Apply(M(1000, "EUR"), tx)
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("Apply() error = %v, want ErrInvalidTransaction", err)
	}
	assertUnchanged(t, ledger)
}

// TestApplyWithdrawBeyondStake asserts that a withdrawal larger than the
// acting stakeholder's own stake is rejected, even when the portfolio as a
// whole could cover it: accepting it would leave the actor below 0% and the
// others above 100%.
func TestApplyWithdrawBeyondStake(t *testing.T) {
	ledger := testLedger()

	// alice holds 60% of 1000: withdrawing 800 exceeds her 600 stake.
	tx := NewWithdraw(Today(), "", "alice", M(800, "EUR"))
	_, err := ledger.Apply(M(1000, "EUR"), tx)
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("Apply() error = %v, want ErrInvalidTransaction", err)
	}
	assertUnchanged(t, ledger)
	if err := ledger.Check(); err != nil {
		t.Errorf("Check() after rejected withdrawal = %v", err)
	}

	// Withdrawing exactly the stake is fine and leaves alice at 0%.
	tx = NewWithdraw(Today(), "", "alice", M(600, "EUR"))
	newTotal, err := ledger.Apply(M(1000, "EUR"), tx)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if want := M(400, "EUR"); !newTotal.Equal(want) {
		t.Errorf("new total = %v, want %v", newTotal, want)
	}
	alice, _ := ledger.Percentage("alice")
	bob, _ := ledger.Percentage("bob")
	if !alice.Equal(0) || !bob.Equal(100) {
		t.Errorf("stakes = alice %v, bob %v, want 0/100", alice, bob)
	}
	if err := ledger.Check(); err != nil {
		t.Errorf("Check() after full withdrawal = %v", err)
	}
}

func TestApplyNonPositiveTotal(t *testing.T) {
	ledger := testLedger()

	_, err := ledger.Apply(M(0, "EUR"), NewDeposit(Today(), "", "alice", M(10, "EUR")))
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Fatalf("Apply() error = %v, want ErrInvalidTransaction", err)
	}
	assertUnchanged(t, ledger)
}

// assertUnchanged checks that a rejected transaction left no trace.
func assertUnchanged(t *testing.T, ledger *Ledger) {
	t.Helper()
	alice, _ := ledger.Percentage("alice")
	bob, _ := ledger.Percentage("bob")
	if !alice.Equal(60) || !bob.Equal(40) {
		t.Errorf("stakes changed: alice=%v bob=%v, want 60/40", alice, bob)
	}
	for _, tx := range ledger.Transactions() {
		t.Errorf("transaction log not empty: %v", tx)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		stakes  map[string]Percent
		wantErr bool
	}{
		{"valid", map[string]Percent{"a": 60, "b": 40}, false},
		{"empty", map[string]Percent{}, false},
		{"rounding slack", map[string]Percent{"a": 60.004, "b": 39.998}, false},
		{"bad sum", map[string]Percent{"a": 60, "b": 30}, true},
		{"negative", map[string]Percent{"a": -10, "b": 110}, true},
		{"above hundred", map[string]Percent{"a": 110}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLedger("EUR", tt.stakes).Check()
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTransaction(t *testing.T) {
	day := NewDate(2025, 8, 1)

	tx, err := NewTransaction(day, "", "alice", M(100, "EUR"))
	if err != nil {
		t.Fatalf("NewTransaction(+100) error = %v", err)
	}
	if _, ok := tx.(Deposit); !ok {
		t.Errorf("NewTransaction(+100) = %T, want Deposit", tx)
	}
	if want := M(100, "EUR"); !tx.Flow().Equal(want) {
		t.Errorf("Flow() = %v, want %v", tx.Flow(), want)
	}

	tx, err = NewTransaction(day, "", "alice", M(-100, "EUR"))
	if err != nil {
		t.Fatalf("NewTransaction(-100) error = %v", err)
	}
	if _, ok := tx.(Withdraw); !ok {
		t.Errorf("NewTransaction(-100) = %T, want Withdraw", tx)
	}
	if want := M(-100, "EUR"); !tx.Flow().Equal(want) {
		t.Errorf("Flow() = %v, want %v", tx.Flow(), want)
	}

	if _, err := NewTransaction(day, "", "alice", M(0, "EUR")); err == nil {
		t.Error("NewTransaction(0) expected an error, got nil")
	}
}
