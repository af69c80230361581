package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/folioscout/folioscout"
	"github.com/google/subcommands"
)

type twrrCmd struct {
	start string
	end   string
}

func (*twrrCmd) Name() string     { return "twrr" }
func (*twrrCmd) Synopsis() string { return "compute the time-weighted return over a date range" }
func (*twrrCmd) Usage() string {
	return `fscout twrr [-s <start_date>] [-e <end_date>]

  Computes the chained time-weighted rate of return between two dates,
  neutralizing the effect of deposits. Defaults to since inception.
`
}

func (c *twrrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date (defaults to the first recorded day).")
	f.StringVar(&c.end, "e", "", "End date (defaults to the last recorded day).")
}

func (c *twrrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	to := snapshots[len(snapshots)-1].Date
	if c.end != "" {
		if to, err = folioscout.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	twrr, err := folioscout.TWRRBetween(snapshots, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("TWRR from %s to %s: %s\n", from, to, twrr.SignedString())
	return subcommands.ExitSuccess
}
