package folioscout

import (
	"log"
	"slices"
)

const (
	// dustShares is the holding size below which a position is valued at zero
	// when building snapshots. It keeps floating point residue from a full
	// sale out of the valuation.
	dustShares = 1e-4

	// zeroShares is the holding size below which a position is considered
	// closed for return calculations.
	zeroShares = 1e-6
)

// Position is the running average-cost state of a single instrument.
// CostBasis covers currently held shares only: a sale moves a proportional
// slice of it into RealizedCost, and the sale amount into RealizedProceeds.
type Position struct {
	Shares           float64
	CostBasis        float64
	RealizedCost     float64
	RealizedProceeds float64
}

// Apply updates the position with one trade priced at the given per-share
// price. A non-positive price means no valid quote was available on the trade
// date; the trade is skipped rather than corrupting the share count.
func (p *Position) Apply(t Trade, price float64) {
	if !(price > 0) {
		log.Printf("warning: skipping %s %s on %s: no valid price", t.Side, t.Ticker, t.Date)
		return
	}

	sharesDelta := t.Amount / price

	if t.Side == Buy {
		p.Shares += sharesDelta
		p.CostBasis += t.Amount
		return
	}

	sharesBefore := p.Shares
	if sharesBefore <= 0 {
		// Cannot realize cost from a position with no basis.
		return
	}

	costPerShare := p.CostBasis / sharesBefore
	sharesSold := min(sharesDelta, sharesBefore)
	if sharesSold < sharesDelta {
		// Oversell: the ledger asks for more shares than are held. Clamp to
		// what is held and prorate the proceeds accordingly.
		log.Printf("warning: %s on %s sells more shares than held, clamping", t.Ticker, t.Date)
	}
	proceeds := 0.0
	if sharesDelta > 0 {
		proceeds = t.Amount * (sharesSold / sharesDelta)
	}
	soldCost := costPerShare * sharesSold

	p.Shares -= sharesSold
	p.CostBasis -= soldCost
	p.RealizedCost += soldCost
	p.RealizedProceeds += proceeds
}

// TotalReturn is the percentage return over everything ever invested in the
// instrument: realized proceeds plus the current value of held shares against
// the total cost. It reports false when there is no meaningful basis, or when
// shares are held but cannot be valued.
func (p *Position) TotalReturn(price float64) (Percent, bool) {
	totalCost := p.RealizedCost + p.CostBasis
	if !(totalCost > 0) {
		return 0, false
	}

	hasShares := p.Shares > zeroShares
	if hasShares && !(price > 0) {
		return 0, false
	}
	currentValue := 0.0
	if hasShares {
		currentValue = p.Shares * price
	}

	totalProceeds := p.RealizedProceeds + currentValue
	return Percent((totalProceeds - totalCost) / totalCost * 100), true
}

// AvgShareReturn is the unrealized percentage return of held shares against
// their average cost. It reports false when the position is closed or the
// instrument cannot be valued.
func (p *Position) AvgShareReturn(price float64) (Percent, bool) {
	if !(p.Shares > 0) || !(p.CostBasis > 0) || !(price > 0) {
		return 0, false
	}
	averageCost := p.CostBasis / p.Shares
	if !(averageCost > 0) {
		return 0, false
	}
	return Percent((price - averageCost) / averageCost * 100), true
}

// Book holds the positions of all instruments during a replay of the ledger.
type Book map[string]*Position

// Position returns the position for a ticker, creating an empty one if needed.
func (b Book) Position(ticker string) *Position {
	p, ok := b[ticker]
	if !ok {
		p = &Position{}
		b[ticker] = p
	}
	return p
}

// Apply routes one trade to the instrument's position.
func (b Book) Apply(t Trade, price float64) {
	b.Position(t.Ticker).Apply(t, price)
}

// Tickers returns the sorted tickers present in the book. Valuations iterate
// this order so that summing holding values is deterministic.
func (b Book) Tickers() []string {
	tickers := make([]string, 0, len(b))
	for t := range b {
		tickers = append(tickers, t)
	}
	slices.Sort(tickers)
	return tickers
}

// Replay rebuilds position state from scratch by applying every trade dated on
// or before 'through', in chronological order, priced as-of the trade date.
// This is how the series extender reconstructs its baseline when it runs in a
// fresh process.
func Replay(trades []Trade, market *MarketData, through Date) Book {
	sorted := slices.Clone(trades)
	SortTrades(sorted)

	book := make(Book)
	for _, t := range sorted {
		if t.Date.After(through) {
			break
		}
		book.Apply(t, market.PriceAsOf(t.Ticker, t.Date))
	}
	return book
}
