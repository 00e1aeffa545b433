package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// printMarkdown renders a markdown document to the terminal, falling back to
// the raw text when rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `depot fmt

  Validates and formats the ledger file. This command reads the ledger,
  validates its ownership percentages, and writes it back in a canonical
  JSONL form: a fresh snapshot line followed by the chronological log.
  Legacy files storing fractions instead of percent points are upgraded.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return usageError(err)
	}

	store, ledger := OpenStore(cfg)
	if err := ledger.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: ledger is inconsistent: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Save(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted ledger %q.\n", cfg.LedgerFile)
	return subcommands.ExitSuccess
}
