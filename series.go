package folioscout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DailySnapshot is the set of derived metrics for one net-worth mark date.
// The series of snapshots is append-only, ordered by date, and read-only to
// consumers.
type DailySnapshot struct {
	Date         Date
	NetWorth     float64
	Contribution float64 // cumulative external cash, forward-filled
	TWRR         Percent // chained time-weighted return since the first snapshot
	NetGain      float64 // NetWorth minus Contribution

	// Per-instrument breakdown, keyed by ticker. A ticker absent from
	// ReturnPercent has no meaningful return (no basis, or unquotable).
	HoldingsValue  map[string]float64
	HoldingsWeight map[string]Percent
	ReturnPercent  map[string]Percent
}

// ErrNoMarks is returned when there is no net-worth mark to build from. It is
// the one data condition callers must treat as fatal: the engine never fails
// on sparsity, but it cannot build a series out of nothing.
var ErrNoMarks = errors.New("no net-worth marks to build a series from")

// BuildSnapshotSeries replays the whole history into the ordered snapshot
// series: one snapshot per net-worth mark date. The marks supply the
// portfolio's total value per date; contributions are a sparse cumulative
// series forward-filled between samples; trades drive the per-instrument
// average-cost positions; market prices value the holdings as-of each date.
func BuildSnapshotSeries(marks, contributions *History[float64], trades []Trade, market *MarketData) ([]DailySnapshot, error) {
	if marks == nil || marks.Len() == 0 {
		return nil, ErrNoMarks
	}
	if contributions == nil {
		contributions = &History[float64]{}
	}
	if market == nil {
		market = NewMarketData()
	}

	sorted := slices.Clone(trades)
	SortTrades(sorted)
	tradesByDate := GroupTradesByDate(sorted)
	tickers := TradedTickers(sorted)

	book := make(Book)
	snapshots := make([]DailySnapshot, 0, marks.Len())

	lastContribution := 0.0
	cumulativeGrowth := 1.0

	for on, netWorth := range marks.Values() {
		// Trades dated exactly this day move the positions first.
		for _, t := range tradesByDate[on] {
			book.Apply(t, market.PriceAsOf(t.Ticker, on))
		}

		values := make(map[string]float64, len(tickers))
		weights := make(map[string]Percent, len(tickers))
		returns := make(map[string]Percent, len(tickers))

		totalHoldings := 0.0
		for _, ticker := range tickers {
			position := book.Position(ticker)
			price := market.PriceAsOf(ticker, on)
			value := 0.0
			if position.Shares > dustShares {
				value = position.Shares * price
			}
			values[ticker] = value
			totalHoldings += value
			if ret, ok := position.TotalReturn(price); ok {
				returns[ticker] = ret
			}
		}
		for _, ticker := range tickers {
			if totalHoldings > 0 {
				weights[ticker] = Percent(values[ticker] / totalHoldings * 100)
			} else {
				weights[ticker] = 0
			}
		}

		if v, ok := contributions.Get(on); ok {
			lastContribution = v
		}

		if n := len(snapshots); n > 0 {
			prev := SeriesPoint{NetWorth: snapshots[n-1].NetWorth, Contribution: snapshots[n-1].Contribution}
			curr := SeriesPoint{NetWorth: netWorth, Contribution: lastContribution}
			cumulativeGrowth *= PeriodReturn(prev, curr)
		}
		// The first date has no previous point: its period return is the identity.

		snapshots = append(snapshots, DailySnapshot{
			Date:           on,
			NetWorth:       netWorth,
			Contribution:   lastContribution,
			TWRR:           Percent((cumulativeGrowth - 1) * 100),
			NetGain:        netWorth - lastContribution,
			HoldingsValue:  values,
			HoldingsWeight: weights,
			ReturnPercent:  returns,
		})
	}

	return snapshots, nil
}

// metricKind discriminates the Metric variants.
type metricKind int

const (
	metricNetWorth metricKind = iota
	metricContributions
	metricInstrument
)

// Metric selects which series a caller wants out of a snapshot: the portfolio
// net worth, the cumulative contributions, or a single instrument's holding
// value. It is resolved once at the call boundary instead of threading a
// selector string through the engine.
type Metric struct {
	kind   metricKind
	ticker string
}

func NetWorthMetric() Metric      { return Metric{kind: metricNetWorth} }
func ContributionsMetric() Metric { return Metric{kind: metricContributions} }

func InstrumentMetric(t string) Metric {
	return Metric{kind: metricInstrument, ticker: strings.ToUpper(t)}
}

// ParseMetric resolves a CLI selector: "networth", "contributions", or a
// ticker.
func ParseMetric(s string) Metric {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "networth", "net-worth":
		return NetWorthMetric()
	case "contributions", "contribution":
		return ContributionsMetric()
	default:
		return InstrumentMetric(s)
	}
}

func (m Metric) String() string {
	switch m.kind {
	case metricContributions:
		return "Contributions"
	case metricInstrument:
		return m.ticker
	default:
		return "Net worth"
	}
}

// Value extracts the metric's value from one snapshot.
func (s *DailySnapshot) Value(m Metric) float64 {
	switch m.kind {
	case metricContributions:
		return s.Contribution
	case metricInstrument:
		return s.HoldingsValue[m.ticker]
	default:
		return s.NetWorth
	}
}

// snapshotIndexAsOf returns the index of the last snapshot dated on or before
// 'on', or -1 when the series starts after it.
func snapshotIndexAsOf(snapshots []DailySnapshot, on Date) int {
	i, found := slices.BinarySearchFunc(snapshots, on, func(s DailySnapshot, d Date) int {
		if s.Date.After(d) {
			return 1
		}
		if s.Date.Before(d) {
			return -1
		}
		return 0
	})
	if found {
		return i
	}
	return i - 1
}

// TWRRBetween computes the chained return of the sub-range of snapshots
// covered by [from, to], mapping dates to snapshot indices first.
func TWRRBetween(snapshots []DailySnapshot, from, to Date) (Percent, error) {
	start := snapshotIndexAsOf(snapshots, from)
	end := snapshotIndexAsOf(snapshots, to)
	if end < 0 {
		return 0, fmt.Errorf("no snapshot on or before %s", to)
	}
	if start < 0 {
		start = 0
	}
	return TWRR(Points(snapshots), start, end), nil
}
