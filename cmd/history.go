package cmd

import (
	"context"
	"errors"
	"flag"

	"github.com/etnz/depot"
	"github.com/etnz/depot/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	stakeholder string
	period      string
	from        string
	floor       float64
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display a stakeholder's share value over time" }
func (*historyCmd) Usage() string {
	return `depot history -s <stakeholder> [-p <period>] [-from <date>] [-floor <amount>]

  Reconstructs what a stakeholder's share of the depot was worth at each
  historical checkpoint, applying the current percentage to past values.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.stakeholder, "s", "", "stakeholder to report on")
	f.StringVar(&c.period, "p", "monthly", "sampling period (daily, weekly, monthly, yearly)")
	f.StringVar(&c.from, "from", "-5y", "start of the reconstruction range")
	f.Float64Var(&c.floor, "floor", 0, "drop points whose share value is below this amount")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError(err)
	}
	if c.stakeholder == "" {
		return usageError(errors.New("-s is required"))
	}
	period, err := depot.ParsePeriod(c.period)
	if err != nil {
		return usageError(err)
	}
	from, err := depot.ParseDate(c.from)
	if err != nil {
		return usageError(err)
	}

	_, ledger := OpenStore(cfg)
	market := FetchMarket(cfg, from, depot.Today())

	floor := depot.M(c.floor, cfg.Currency)
	report, err := depot.NewHistoryReport(cfg.Portfolio(), market, ledger, c.stakeholder, period, floor)
	if err != nil {
		return usageError(err)
	}
	printMarkdown(renderer.HistoryMarkdown(report))
	return subcommands.ExitSuccess
}
