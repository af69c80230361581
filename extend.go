package folioscout

import (
	"slices"

	"github.com/shopspring/decimal"
)

// SeriesRecord is one persisted row of the snapshot series: the total
// holdings value and the cumulative contribution of a day, both rounded to
// two decimal places.
type SeriesRecord struct {
	Date         Date
	NetWorth     float64
	Contribution float64
}

// round2 rounds a currency value to two decimal places, the precision of the
// persisted series.
func round2(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}

// ExtendSnapshotSeries appends new days to a previously persisted series
// without recomputing its history. 'last' is the final persisted record; the
// returned records cover every day strictly after it, up to and including
// 'through'. When the series is already up to date it returns nil.
//
// Position state is rebuilt by replaying every trade dated on or before the
// last persisted day, because the extender may run in a different process
// than the one that built the history. Replaying the same inputs twice
// produces identical records, so a re-run is harmless as long as the caller
// only appends days past the persisted tail.
func ExtendSnapshotSeries(last SeriesRecord, trades []Trade, increments map[Date]float64, market *MarketData, through Date) []SeriesRecord {
	if !through.After(last.Date) {
		return nil
	}
	if market == nil {
		market = NewMarketData()
	}

	sorted := slices.Clone(trades)
	SortTrades(sorted)
	tradesByDate := GroupTradesByDate(sorted)

	book := Replay(sorted, market, last.Date)
	cumulative := last.Contribution

	var records []SeriesRecord
	for day := range NewRange(last.Date.Add(1), through).Days() {
		cumulative += increments[day]

		for _, t := range tradesByDate[day] {
			book.Apply(t, market.PriceAsOf(t.Ticker, day))
		}

		// Sorted ticker order keeps the float sum, and therefore the
		// persisted bytes, deterministic across runs.
		total := 0.0
		for _, ticker := range book.Tickers() {
			if p := book[ticker]; p.Shares > dustShares {
				total += p.Shares * market.PriceAsOf(ticker, day)
			}
		}

		records = append(records, SeriesRecord{
			Date:         day,
			NetWorth:     round2(total),
			Contribution: round2(cumulative),
		})
	}
	return records
}
