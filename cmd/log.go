package cmd

import (
	"context"
	"errors"
	"flag"

	"github.com/etnz/depot"
	"github.com/etnz/depot/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	head int
	tail int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list the recorded transactions" }
func (*logCmd) Usage() string {
	return `depot log [-head <n>] [-tail <n>]

  Lists the ledger's transaction log in chronological order.
`
}

func (p *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError(err)
	}
	if p.head > 0 && p.tail > 0 {
		return usageError(errors.New("-head and -tail cannot be used together"))
	}

	_, ledger := OpenStore(cfg)

	var transactions []depot.Transaction
	for _, tx := range ledger.Transactions() {
		transactions = append(transactions, tx)
	}
	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}
