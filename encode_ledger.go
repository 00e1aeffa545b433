package depot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger decodes a ledger from a stream of JSONL data. The first line
// must be an "init" snapshot carrying the current ownership percentages; the
// following lines are the transaction log, returned in chronological order.
//
// Ownership values are canonically percent points in [0, 100]. Legacy files
// written with fractions in [0, 1] are detected here (the values sum to ≈1)
// and scaled once, so no call site ever has to guess the representation.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	scanner := bufio.NewScanner(r)

	var ledger *Ledger
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		if identifier.Command == CmdInit {
			var temp struct {
				baseCmd
				Currency  string             `json:"currency"`
				Ownership map[string]float64 `json:"ownership"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("invalid init line: %w", err)
			}
			stakes := make(map[string]Percent, len(temp.Ownership))
			for name, v := range temp.Ownership {
				stakes[name] = Percent(v)
			}
			normalizeFractions(stakes)
			ledger = NewLedger(temp.Currency, stakes)
			continue
		}

		if ledger == nil {
			return nil, fmt.Errorf("ledger file must start with an %q line, got %q", CmdInit, identifier.Command)
		}

		// Use a temporary type that has all possible transaction fields.
		var temp struct {
			stakeCmd
			amountCmd
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, err
		}

		switch identifier.Command {
		case CmdDeposit:
			ledger.append(Deposit{stakeCmd: temp.stakeCmd, Amount: temp.Money()})
		case CmdWithdraw:
			ledger.append(Withdraw{stakeCmd: temp.stakeCmd, Amount: temp.Money()})
		default:
			return nil, fmt.Errorf("unknown ledger command: %q", identifier.Command)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger file is empty")
	}
	return ledger, nil
}

// normalizeFractions converts a legacy fraction-based ownership mapping
// (values summing to ≈1) to percent points, in place.
func normalizeFractions(stakes map[string]Percent) {
	var sum float64
	for _, p := range stakes {
		sum += float64(p)
	}
	if len(stakes) == 0 || sum < 1-sumTolerance || sum > 1+sumTolerance {
		return
	}
	log.Printf("ledger ownership stored as fractions (sum=%.4f), converting to percent points", sum)
	for name, p := range stakes {
		stakes[name] = p * 100
	}
}

// EncodeLedger persists a ledger to an io.Writer in JSONL format: one init
// line with the current ownership snapshot, then the full transaction log in
// chronological order, with canonical key ordering on every line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ownership := make(map[string]float64, len(ledger.stakes))
	for name, p := range ledger.stakes {
		ownership[name] = float64(p)
	}
	head := initCmd{
		baseCmd:   baseCmd{Command: CmdInit, Date: Today()},
		Currency:  ledger.currency,
		Ownership: ownership,
	}
	if err := encodeLine(w, head); err != nil {
		return err
	}

	for _, tx := range ledger.transactions {
		if err := encodeLine(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// encodeLine marshals a single record to JSON and writes it followed by a
// newline.
func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger line: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger line: %w", err)
	}
	return nil
}
