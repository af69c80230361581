package folioscout

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(s)) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade side: %q", s)
	}
}

// Trade is a single entry of the trade ledger: on a given day, a given
// currency amount of an instrument was bought or sold. The amount is always a
// positive magnitude, for a SELL it represents the proceeds of the sale.
type Trade struct {
	Date   Date
	Ticker string
	Side   Side
	Amount float64
}

// Valid reports whether the trade row is structurally usable: a real date, a
// ticker, a known side and a finite positive amount. Rows that fail this test
// are dropped by the decoder, never the whole batch.
func (t Trade) Valid() bool {
	if t.Date.IsZero() || t.Ticker == "" {
		return false
	}
	if t.Side != Buy && t.Side != Sell {
		return false
	}
	return !math.IsNaN(t.Amount) && !math.IsInf(t.Amount, 0) && t.Amount > 0
}

// MarshalJSON writes the trade with a stable field order, so that ledger files
// stay diff-friendly.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("ticker", t.Ticker)
	w.Append("side", t.Side)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

func (t *Trade) UnmarshalJSON(data []byte) error {
	var row struct {
		Date   Date    `json:"date"`
		Ticker string  `json:"ticker"`
		Side   string  `json:"side"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	side, err := ParseSide(row.Side)
	if err != nil {
		return err
	}
	*t = Trade{Date: row.Date, Ticker: strings.ToUpper(row.Ticker), Side: side, Amount: row.Amount}
	return nil
}

// SortTrades sorts the ledger chronologically. The sort is stable: trades on
// the same day keep their input order, which is the tie-breaking rule of the
// replay.
func SortTrades(trades []Trade) {
	slices.SortStableFunc(trades, func(a, b Trade) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
}

// GroupTradesByDate buckets a chronologically sorted ledger by day, preserving
// the intra-day order.
func GroupTradesByDate(trades []Trade) map[Date][]Trade {
	grouped := make(map[Date][]Trade)
	for _, t := range trades {
		grouped[t.Date] = append(grouped[t.Date], t)
	}
	return grouped
}

// TradedTickers returns the sorted set of tickers appearing in the ledger.
func TradedTickers(trades []Trade) []string {
	seen := make(map[string]struct{})
	var tickers []string
	for _, t := range trades {
		if t.Ticker == "" {
			continue
		}
		if _, ok := seen[t.Ticker]; !ok {
			seen[t.Ticker] = struct{}{}
			tickers = append(tickers, t.Ticker)
		}
	}
	slices.Sort(tickers)
	return tickers
}
