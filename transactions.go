package depot

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying ledger commands.
type CommandType string

// Command types used for identifying ledger lines.
const (
	CmdInit     CommandType = "init"
	CmdDeposit  CommandType = "deposit"
	CmdWithdraw CommandType = "withdraw"
)

// Transaction is a single cash movement by one stakeholder. Transactions are
// append-only: once recorded they are never modified.
type Transaction interface {
	What() CommandType // the command type of the transaction ("deposit", "withdraw")
	When() Date        // the date on which the transaction occurred
	Who() string       // the acting stakeholder
	Flow() Money       // the signed cash flow: positive contribution, negative withdrawal
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"` // Command specifies the type of ledger line.
	ID      string      `json:"id,omitempty"`
	Date    Date        `json:"date"`
	Time    string      `json:"time,omitempty"` // RFC3339 submission timestamp
	Memo    string      `json:"memo,omitempty"`
}

func (t baseCmd) What() CommandType { return t.Command }
func (t baseCmd) When() Date        { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Optional("id", t.ID)
	w.Append("date", t.Date)
	w.Optional("time", t.Time)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// newBaseCmd stamps a fresh command with an id and the submission time.
func newBaseCmd(command CommandType, day Date, memo string) baseCmd {
	now := time.Now().UTC()
	if day.IsZero() {
		day = DateOf(now)
	}
	return baseCmd{
		Command: command,
		ID:      uuid.NewString(),
		Date:    day,
		Time:    now.Format(time.RFC3339),
		Memo:    memo,
	}
}

// stakeCmd is a component for transactions acted by a single stakeholder.
type stakeCmd struct {
	baseCmd
	Stakeholder string `json:"stakeholder"`
}

func (t stakeCmd) Who() string { return t.Stakeholder }

// MarshalJSON implements the json.Marshaler interface for stakeCmd.
func (t stakeCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("stakeholder", t.Stakeholder)
	return w.MarshalJSON()
}

// amountCmd is a specialized struct to read an amount in two json fields.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountCmd) Money() Money { return M(a.Amount, a.Currency) }

// Deposit represents a cash contribution by a stakeholder. The amount is
// always positive.
type Deposit struct {
	stakeCmd
	Amount Money
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day Date, memo, stakeholder string, amount Money) Deposit {
	return Deposit{
		stakeCmd: stakeCmd{baseCmd: newBaseCmd(CmdDeposit, day, memo), Stakeholder: stakeholder},
		Amount:   amount,
	}
}

func (t Deposit) Flow() Money { return t.Amount }

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.stakeCmd == o.stakeCmd && t.Amount.Equal(o.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.stakeCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// Withdraw represents a cash withdrawal by a stakeholder. The amount is
// always positive; the flow it produces is negative.
type Withdraw struct {
	stakeCmd
	Amount Money
}

// NewWithdraw creates a new Withdraw transaction.
func NewWithdraw(day Date, memo, stakeholder string, amount Money) Withdraw {
	return Withdraw{
		stakeCmd: stakeCmd{baseCmd: newBaseCmd(CmdWithdraw, day, memo), Stakeholder: stakeholder},
		Amount:   amount,
	}
}

func (t Withdraw) Flow() Money { return t.Amount.Neg() }

func (t Withdraw) Equal(other Transaction) bool {
	o, ok := other.(Withdraw)
	return ok && t.stakeCmd == o.stakeCmd && t.Amount.Equal(o.Amount)
}

// MarshalJSON implements the json.Marshaler interface for Withdraw.
func (t Withdraw) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.stakeCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// NewTransaction creates a Deposit or a Withdraw depending on the sign of
// amount. A zero amount is rejected.
func NewTransaction(day Date, memo, stakeholder string, amount Money) (Transaction, error) {
	switch {
	case amount.IsPositive():
		return NewDeposit(day, memo, stakeholder, amount), nil
	case amount.IsNegative():
		return NewWithdraw(day, memo, stakeholder, amount.Neg()), nil
	default:
		return nil, errors.New("transaction amount cannot be zero")
	}
}

// initCmd is the snapshot line heading a ledger file. It carries the current
// ownership percentages; it is not part of the transaction log.
type initCmd struct {
	baseCmd
	Currency  string             `json:"currency"`
	Ownership map[string]float64 `json:"ownership"` // stakeholder -> percent points
}

// MarshalJSON implements the json.Marshaler interface for initCmd.
func (t initCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("currency", t.Currency)
	w.Append("ownership", t.Ownership)
	return w.MarshalJSON()
}

var _ json.Marshaler = Deposit{}
var _ json.Marshaler = Withdraw{}
