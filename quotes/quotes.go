// Package quotes refreshes the on-disk price histories from the market data
// providers: Tiingo for most tickers, Alpha Vantage for the TSX-listed ones
// Tiingo does not cover. All concurrency of the application lives here, at the
// fetching edge; results are reduced into the store before the engine reads
// anything.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/folioscout/folioscout"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultStart bounds the very first fetch of a ticker with no history yet.
	defaultStart = "2020-01-01"

	// refetchWindowDays re-fetches the last few days on every update, so that
	// provider revisions of recent closes heal themselves.
	refetchWindowDays = 7

	// maxConcurrentFetches bounds the fan-out across tickers.
	maxConcurrentFetches = 4
)

// Updater fetches and merges price histories for a set of tickers.
type Updater struct {
	TiingoToken     string
	AlphaVantageKey string

	// AlphaVantageSymbols selects which tickers are quoted by Alpha Vantage
	// and under which provider symbol. An empty value defaults to
	// "<TICKER>.TRT", the Toronto listing.
	AlphaVantageSymbols map[string]string

	// Client overrides the default daily-caching HTTP client, for tests.
	Client *http.Client
}

// NewUpdater returns an updater configured from the environment, reading
// TIINGO_TOKEN and ALPHA_VANTAGE_API_KEY.
func NewUpdater(alphaVantageTickers []string) *Updater {
	symbols := make(map[string]string, len(alphaVantageTickers))
	for _, t := range alphaVantageTickers {
		symbols[strings.ToUpper(t)] = ""
	}
	return &Updater{
		TiingoToken:         strings.TrimSpace(os.Getenv("TIINGO_TOKEN")),
		AlphaVantageKey:     strings.TrimSpace(os.Getenv("ALPHA_VANTAGE_API_KEY")),
		AlphaVantageSymbols: symbols,
	}
}

func (u *Updater) httpClient() *http.Client {
	if u.Client != nil {
		return u.Client
	}
	return newDailyCachingClient()
}

// alphaVantageSymbol reports whether the ticker is quoted by Alpha Vantage,
// and under which symbol.
func (u *Updater) alphaVantageSymbol(ticker string) (string, bool) {
	symbol, ok := u.AlphaVantageSymbols[ticker]
	if !ok {
		return "", false
	}
	if symbol == "" {
		symbol = ticker + ".TRT"
	}
	return symbol, true
}

// fetch retrieves the price history of one ticker from its provider,
// starting at 'from'.
func (u *Updater) fetch(ctx context.Context, client *http.Client, ticker string, from folioscout.Date) (*folioscout.History[float64], error) {
	if symbol, ok := u.alphaVantageSymbol(ticker); ok {
		if u.AlphaVantageKey == "" {
			return nil, errors.New("missing ALPHA_VANTAGE_API_KEY")
		}
		return fetchAlphaVantagePrices(ctx, client, u.AlphaVantageKey, symbol, from)
	}
	if u.TiingoToken == "" {
		return nil, errors.New("missing TIINGO_TOKEN")
	}
	return fetchTiingoPrices(ctx, client, u.TiingoToken, ticker, from)
}

// Update refreshes the stored price history of every ticker: it fetches from 7
// days before the last known price (or from the default start for a new
// ticker), merges by date with last-data-wins, and rewrites the price file. A
// failing ticker keeps its existing file and is only logged, the other tickers
// still update.
func (u *Updater) Update(ctx context.Context, store *folioscout.Store, tickers []string) error {
	client := u.httpClient()

	histories := make([]*folioscout.History[float64], len(tickers))
	for i, ticker := range tickers {
		h, err := store.Prices(ticker)
		if os.IsNotExist(err) {
			h = &folioscout.History[float64]{}
		} else if err != nil {
			return fmt.Errorf("loading prices for %s: %w", ticker, err)
		}
		histories[i] = h
	}

	// Each goroutine writes only its own slot, the reduce happens after Wait.
	fetched := make([]*folioscout.History[float64], len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, ticker := range tickers {
		g.Go(func() error {
			from := folioscout.MustParseDate(defaultStart)
			if histories[i].Len() > 0 {
				day, _ := histories[i].Latest()
				from = day.Add(-refetchWindowDays)
			}
			h, err := u.fetch(gctx, client, ticker, from)
			if err != nil {
				log.Printf("warning: %s: %v (keeping existing prices)", ticker, err)
				return nil
			}
			fetched[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	updated := 0
	for i, ticker := range tickers {
		if fetched[i] == nil {
			continue
		}
		merged := histories[i]
		for day, price := range fetched[i].Values() {
			merged.Append(day, price)
		}
		if err := store.WritePrices(ticker, merged); err != nil {
			return fmt.Errorf("writing prices for %s: %w", ticker, err)
		}
		log.Printf("%s: updated (%d rows)", ticker, merged.Len())
		updated++
	}
	log.Printf("done, updated %d/%d tickers", updated, len(tickers))
	return nil
}
