package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/folioscout/folioscout"
	"github.com/folioscout/folioscout/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	currency string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the latest portfolio summary" }
func (*summaryCmd) Usage() string {
	return `fscout summary [-c <currency>]

  Displays the latest recorded day: net worth, contributions, net gain, TWRR
  since inception, and the holdings breakdown.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "CAD", "Reporting currency code.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := loadSnapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot series: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := folioscout.NewSummaryReport(snapshots, c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderSummary(report))
	return subcommands.ExitSuccess
}
