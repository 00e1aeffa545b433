package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/depot/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion, handled before flag parsing. Install with
	// COMP_INSTALL=1 depot.
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
		},
		Sub: map[string]*complete.Command{
			"daily":    {Flags: map[string]complete.Predictor{"d": predict.Nothing, "w": predict.Nothing}},
			"history":  {Flags: map[string]complete.Predictor{"s": predict.Nothing, "p": predict.Set{"daily", "weekly", "monthly", "yearly"}, "from": predict.Nothing, "floor": predict.Nothing}},
			"balances": {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
			"tx":       {Flags: map[string]complete.Predictor{"s": predict.Nothing, "a": predict.Nothing, "d": predict.Nothing, "m": predict.Nothing}},
			"log":      {Flags: map[string]complete.Predictor{"head": predict.Nothing, "tail": predict.Nothing}},
			"fmt":      {},
		},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
