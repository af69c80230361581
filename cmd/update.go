package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/folioscout/folioscout"
	"github.com/folioscout/folioscout/quotes"
	"github.com/google/subcommands"
)

type updateCmd struct {
	tickers      string
	alphaVantage string
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh price histories from Tiingo and Alpha Vantage"
}
func (*updateCmd) Usage() string {
	return `fscout update [-t <tickers>] [-av <tickers>]

  Fetches daily prices for every ticker in the trade ledger and merges them
  into stockPriceHistory/. Reads TIINGO_TOKEN and ALPHA_VANTAGE_API_KEY from
  the environment.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tickers, "t", "", "Comma-separated tickers to update. Defaults to all traded tickers.")
	f.StringVar(&c.alphaVantage, "av", "", "Comma-separated tickers quoted by Alpha Vantage instead of Tiingo.")
}

// splitTickers parses a comma-separated ticker list flag.
func splitTickers(s string) []string {
	var tickers []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := openStore()

	tickers := splitTickers(c.tickers)
	if len(tickers) == 0 {
		trades, err := store.Trades()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading trades from %q: %v\n", store.Dir(), err)
			return subcommands.ExitFailure
		}
		tickers = folioscout.TradedTickers(trades)
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "No tickers found to update.")
		return subcommands.ExitSuccess
	}

	updater := quotes.NewUpdater(splitTickers(c.alphaVantage))
	if err := updater.Update(ctx, store, tickers); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating prices: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
