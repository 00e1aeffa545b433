package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/depot"
	"github.com/etnz/depot/renderer"
	"github.com/google/subcommands"
)

// dailyCmd holds the flags for the 'daily' subcommand.
type dailyCmd struct {
	date  string
	watch int
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the daily depot report" }
func (*dailyCmd) Usage() string {
	return `depot daily [-d <date>] [-w n]

  Displays the depot value, per-position detail and stakeholder balances
  for a single day.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the report (defaults to today)")
	f.IntVar(&c.watch, "w", 0, "run every n seconds")
}

func (c *dailyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError(err)
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		return usageError(err)
	}

	_, ledger := OpenStore(cfg)

	for {
		// A month of history is enough to forward-fill over holidays and
		// compute the previous close.
		market := FetchMarket(cfg, on.AddMonth(-1), on)

		report := depot.NewDailyReport(cfg.Portfolio(), market, ledger, on)
		if c.watch > 0 {
			fmt.Println("\033[2J")
		}
		printMarkdown(renderer.DailyMarkdown(report))

		if c.watch > 0 {
			time.Sleep(time.Duration(c.watch) * time.Second)
		} else {
			break
		}
	}
	return subcommands.ExitSuccess
}
