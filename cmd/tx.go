package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/depot"
	"github.com/google/subcommands"
)

type txCmd struct {
	stakeholder string
	amount      float64
	date        string
	memo        string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "record a deposit or withdrawal and rebalance ownership" }
func (*txCmd) Usage() string {
	return `depot tx -s <stakeholder> -a <amount> [-d <date>] [-m <memo>]

  Records a cash movement by a stakeholder. A positive amount is a deposit,
  a negative one a withdrawal. The acting stakeholder's stake moves by the
  amount; every other stakeholder's monetary stake stays constant, and all
  percentages are recomputed against the new total.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.stakeholder, "s", "", "acting stakeholder")
	f.Float64Var(&c.amount, "a", 0, "amount, positive to deposit, negative to withdraw")
	f.StringVar(&c.date, "d", "", "transaction date (defaults to today)")
	f.StringVar(&c.memo, "m", "", "free-form memo")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError(err)
	}
	if c.stakeholder == "" {
		return usageError(errors.New("-s is required"))
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		return usageError(err)
	}

	tx, err := depot.NewTransaction(on, c.memo, c.stakeholder, depot.M(c.amount, cfg.Currency))
	if err != nil {
		return usageError(err)
	}

	store, ledger := OpenStore(cfg)
	if err := ledger.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: ledger is inconsistent, fix it before recording: %v\n", err)
		return subcommands.ExitFailure
	}

	// Value the depot at the transaction date's prices.
	market := FetchMarket(cfg, on.AddMonth(-1), on)
	total := cfg.Portfolio().ValueOn(market, on)

	newTotal, err := store.Record(ledger, total, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s %s by %s. New total value: %s\n", tx.What(), tx.Flow(), tx.Who(), newTotal)
	for name := range ledger.Stakeholders() {
		pct, _ := ledger.Percentage(name)
		fmt.Printf("  %-12s %s\n", name, pct)
	}
	return subcommands.ExitSuccess
}
