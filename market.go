package folioscout

import (
	"log"
	"math"
	"slices"
)

// MarketData holds the known price history of every instrument. Histories are
// sparse: not every calendar day has a quote, and an instrument may have no
// data at all. Once loaded the data is read-only for the duration of a
// snapshot build, so lookups are safe from any goroutine.
type MarketData struct {
	prices map[string]*History[float64]
}

// NewMarketData returns a new empty market data collection.
func NewMarketData() *MarketData {
	return &MarketData{prices: make(map[string]*History[float64])}
}

// Has reports whether any price is known for the ticker.
func (m *MarketData) Has(ticker string) bool {
	h, ok := m.prices[ticker]
	return ok && h.Len() > 0
}

// Add records a price for a ticker on a day. Non-finite or non-positive
// prices are dropped, a gap is preferable to a poisoned history.
func (m *MarketData) Add(ticker string, on Date, price float64) {
	if !(price > 0) || math.IsInf(price, 0) {
		log.Printf("warning: dropping invalid price %v for %s on %s", price, ticker, on)
		return
	}
	h, ok := m.prices[ticker]
	if !ok {
		h = &History[float64]{}
		m.prices[ticker] = h
	}
	h.Append(on, price)
}

// Prices returns the price history of a ticker, or nil if none is known.
func (m *MarketData) Prices(ticker string) *History[float64] {
	return m.prices[ticker]
}

// PriceAsOf answers "what was the instrument worth on that day" with the best
// available information: the exact quote if one exists, otherwise the latest
// quote strictly before the day, otherwise 0. The zero fallback propagates as
// a zero-valued holding instead of a failure, historical gaps are expected.
func (m *MarketData) PriceAsOf(ticker string, on Date) float64 {
	h, ok := m.prices[ticker]
	if !ok {
		return 0
	}
	price, ok := h.ValueAsOf(on)
	if !ok {
		return 0
	}
	return price
}

// Tickers returns the sorted tickers with at least one known price.
func (m *MarketData) Tickers() []string {
	tickers := make([]string, 0, len(m.prices))
	for t, h := range m.prices {
		if h.Len() > 0 {
			tickers = append(tickers, t)
		}
	}
	slices.Sort(tickers)
	return tickers
}
