package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/folioscout/folioscout"
	"github.com/google/subcommands"
)

type extendCmd struct{}

func (*extendCmd) Name() string { return "extend" }
func (*extendCmd) Synopsis() string {
	return "append the days since the last recorded entry to the net-worth series"
}
func (*extendCmd) Usage() string {
	return `fscout extend

  Values the portfolio for every day after the last recorded entry, up to
  today, and appends the results to networth.json and contributions.json.
  Run 'fscout update' first to value the new days with fresh quotes.
`
}

func (*extendCmd) SetFlags(f *flag.FlagSet) {}

func (c *extendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := openStore()

	netWorth, err := store.NetWorth()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading net worth from %q: %v\n", store.Dir(), err)
		return subcommands.ExitFailure
	}
	if netWorth.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to extend: the net-worth series is empty")
		return subcommands.ExitFailure
	}
	lastDay, lastValue := netWorth.Latest()

	contributions, err := store.Contributions()
	if os.IsNotExist(err) {
		contributions = &folioscout.History[float64]{}
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading contributions: %v\n", err)
		return subcommands.ExitFailure
	}
	lastContribution, _ := contributions.ValueAsOf(lastDay)

	trades, err := store.Trades()
	if os.IsNotExist(err) {
		trades = nil
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trades: %v\n", err)
		return subcommands.ExitFailure
	}

	increments, err := store.ContributionIncrements()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading contribution increments: %v\n", err)
		return subcommands.ExitFailure
	}

	market, err := store.Market(folioscout.TradedTickers(trades))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading price histories: %v\n", err)
		return subcommands.ExitFailure
	}

	last := folioscout.SeriesRecord{Date: lastDay, NetWorth: lastValue, Contribution: lastContribution}
	records := folioscout.ExtendSnapshotSeries(last, trades, increments, market, folioscout.Today())
	if len(records) == 0 {
		fmt.Printf("Already up to date (last: %s)\n", lastDay)
		return subcommands.ExitSuccess
	}

	if err := store.AppendRecords(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error appending records: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Appended %d days, through %s\n", len(records), records[len(records)-1].Date)
	return subcommands.ExitSuccess
}
