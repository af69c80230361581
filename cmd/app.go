// Package cmd implements the fscout CLI application.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/folioscout/folioscout"
	"github.com/google/subcommands"
)

// Commands lists the subcommands in registration order.
// A main package registers them on a commander and executes the selected one.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&historyCmd{},
	&twrrCmd{},
	&extendCmd{},
	&updateCmd{},
	&topicCmd{},
	&assistCmd{},
}

// Register registers the fscout subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "data", "Path to the portfolio data directory")

func openStore() *folioscout.Store { return folioscout.NewStore(*dataDir) }

// loadSnapshots loads the data directory and builds the full snapshot series.
// Missing contributions or trades files degrade to empty data; missing
// net-worth marks are fatal.
func loadSnapshots() ([]folioscout.DailySnapshot, error) {
	store := openStore()

	marks, err := store.NetWorth()
	if err != nil {
		return nil, fmt.Errorf("loading net worth from %q: %w", store.Dir(), err)
	}

	contributions, err := store.Contributions()
	if os.IsNotExist(err) {
		contributions = &folioscout.History[float64]{}
	} else if err != nil {
		return nil, fmt.Errorf("loading contributions: %w", err)
	}

	trades, err := store.Trades()
	if os.IsNotExist(err) {
		trades = nil
	} else if err != nil {
		return nil, fmt.Errorf("loading trades: %w", err)
	}

	market, err := store.Market(folioscout.TradedTickers(trades))
	if err != nil {
		return nil, fmt.Errorf("loading price histories: %w", err)
	}

	return folioscout.BuildSnapshotSeries(marks, contributions, trades, market)
}
