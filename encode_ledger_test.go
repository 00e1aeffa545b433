package depot

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	jsonlStream := `
{"command":"init","date":"2025-08-01","currency":"EUR","ownership":{"alice":60,"bob":40}}
{"command":"deposit","date":"2025-08-03","stakeholder":"alice","currency":"EUR","amount":500}
{"command":"withdraw","date":"2025-08-02","stakeholder":"bob","currency":"EUR","amount":100}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}

	if ledger.Currency() != "EUR" {
		t.Errorf("Currency() = %q, want EUR", ledger.Currency())
	}
	alice, _ := ledger.Percentage("alice")
	bob, _ := ledger.Percentage("bob")
	if !alice.Equal(60) || !bob.Equal(40) {
		t.Errorf("stakes = alice %v, bob %v, want 60/40", alice, bob)
	}

	if len(ledger.transactions) != 2 {
		t.Fatalf("DecodeLedger() decoded %d transactions, want 2", len(ledger.transactions))
	}
	// The log is chronological: the withdraw on the 2nd comes first.
	if _, ok := ledger.transactions[0].(Withdraw); !ok {
		t.Errorf("transactions[0] = %T, want Withdraw", ledger.transactions[0])
	}
	if _, ok := ledger.transactions[1].(Deposit); !ok {
		t.Errorf("transactions[1] = %T, want Deposit", ledger.transactions[1])
	}
	if want := M(500, "EUR"); !ledger.transactions[1].Flow().Equal(want) {
		t.Errorf("deposit Flow() = %v, want %v", ledger.transactions[1].Flow(), want)
	}
	if want := M(-100, "EUR"); !ledger.transactions[0].Flow().Equal(want) {
		t.Errorf("withdraw Flow() = %v, want %v", ledger.transactions[0].Flow(), want)
	}
}

// TestDecodeLedgerFractions asserts that legacy files storing ownership as
// fractions are upgraded to percent points on load.
func TestDecodeLedgerFractions(t *testing.T) {
	jsonlStream := `{"command":"init","date":"2025-08-01","currency":"EUR","ownership":{"alice":0.6,"bob":0.4}}
`
	ledger, err := DecodeLedger(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}

	alice, _ := ledger.Percentage("alice")
	bob, _ := ledger.Percentage("bob")
	if !alice.Equal(60) || !bob.Equal(40) {
		t.Errorf("stakes = alice %v, bob %v, want 60/40", alice, bob)
	}
	if err := ledger.Check(); err != nil {
		t.Errorf("Check() after fraction upgrade = %v", err)
	}
}

func TestDecodeLedgerErrors(t *testing.T) {
	tests := []struct {
		name   string
		stream string
	}{
		{"empty", ""},
		{"missing init", `{"command":"deposit","date":"2025-08-01","stakeholder":"alice","currency":"EUR","amount":500}`},
		{"unknown command", `{"command":"init","date":"2025-08-01","currency":"EUR","ownership":{}}
{"command":"split","date":"2025-08-02"}`},
		{"not json", "not a json line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tt.stream)); err == nil {
				t.Error("DecodeLedger() expected an error, got nil")
			}
		})
	}
}

func TestEncodeDecodeLedgerRoundTrip(t *testing.T) {
	ledger := NewLedger("EUR", map[string]Percent{"alice": 60, "bob": 40})
	if _, err := ledger.Apply(M(1000, "EUR"), NewDeposit(NewDate(2025, 8, 1), "first", "alice", M(500, "EUR"))); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := ledger.Apply(M(1500, "EUR"), NewWithdraw(NewDate(2025, 8, 2), "", "bob", M(200, "EUR"))); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger() returned an unexpected error: %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() returned an unexpected error: %v", err)
	}

	for name := range ledger.Stakeholders() {
		want, _ := ledger.Percentage(name)
		got, ok := decoded.Percentage(name)
		if !ok || !got.Equal(want) {
			t.Errorf("decoded stake for %q = %v, want %v", name, got, want)
		}
	}

	if len(decoded.transactions) != len(ledger.transactions) {
		t.Fatalf("decoded %d transactions, want %d", len(decoded.transactions), len(ledger.transactions))
	}
	for i, tx := range ledger.transactions {
		if !tx.Equal(decoded.transactions[i]) {
			t.Errorf("transaction %d does not survive the round trip.\nGot:  %+v\nWant: %+v", i, decoded.transactions[i], tx)
		}
	}
}
