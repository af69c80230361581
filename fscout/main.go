package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/folioscout/folioscout/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion. It must run before flag.Parse: when the
// shell invokes the binary in completion mode it prints candidates and exits.
func completion() {
	dates := predict.Nothing
	currency := predict.Set{"CAD", "USD", "EUR"}

	fscout := &complete.Command{
		Flags: map[string]complete.Predictor{
			"data": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"summary": {Flags: map[string]complete.Predictor{"c": currency}},
			"history": {Flags: map[string]complete.Predictor{
				"m": predict.Set{"networth", "contributions"},
				"s": dates, "e": dates, "c": currency,
			}},
			"twrr":   {Flags: map[string]complete.Predictor{"s": dates, "e": dates}},
			"extend": {},
			"update": {Flags: map[string]complete.Predictor{"t": predict.Nothing, "av": predict.Nothing}},
			"topic":  {Args: predict.Set{"readme", "data", "twrr", "positions", "update", "extend"}},
			"assist": {Flags: map[string]complete.Predictor{"c": currency}},
		},
	}
	fscout.Complete("fscout")
}
