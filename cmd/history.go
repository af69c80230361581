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

type historyCmd struct {
	metric   string
	start    string
	end      string
	currency string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the history of a metric" }
func (*historyCmd) Usage() string {
	return `fscout history [-m <metric>] [-s <start_date>] [-e <end_date>] [-c <currency>]

  Displays the date/value table of a metric over a date range. The metric is
  "networth" (default), "contributions", or a ticker.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.metric, "m", "networth", "Metric to report: networth, contributions, or a ticker.")
	f.StringVar(&c.start, "s", "", "Start date (defaults to the first recorded day).")
	f.StringVar(&c.end, "e", "", "End date (defaults to today).")
	f.StringVar(&c.currency, "c", "CAD", "Reporting currency code.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshots, err := loadSnapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building snapshot series: %v\n", err)
		return subcommands.ExitFailure
	}

	from := snapshots[0].Date
	if c.start != "" {
		if from, err = folioscout.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	to := folioscout.Today()
	if c.end != "" {
		if to, err = folioscout.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	metric := folioscout.ParseMetric(c.metric)
	report := folioscout.NewHistoryReport(snapshots, metric, c.currency, folioscout.NewRange(from, to))
	if len(report.Entries) == 0 {
		fmt.Fprintf(os.Stderr, "No recorded days between %s and %s\n", from, to)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderHistory(report))
	return subcommands.ExitSuccess
}
