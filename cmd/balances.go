package cmd

import (
	"context"
	"flag"

	"github.com/etnz/depot"
	"github.com/etnz/depot/renderer"
	"github.com/google/subcommands"
)

type balancesCmd struct {
	date string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display every stakeholder's balance" }
func (*balancesCmd) Usage() string {
	return `depot balances [-d <date>]

  Displays each stakeholder's percentage and the monetary value it
  represents at the given day's prices.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the valuation (defaults to today)")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError(err)
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		return usageError(err)
	}

	_, ledger := OpenStore(cfg)
	market := FetchMarket(cfg, on.AddMonth(-1), on)

	report := depot.NewDailyReport(cfg.Portfolio(), market, ledger, on)
	printMarkdown(renderer.BalancesMarkdown(report))
	return subcommands.ExitSuccess
}
