package folioscout

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// This file persists the portfolio data in a directory of plain JSON files,
// human-readable and git-friendly:
//
//	networth.json                [["2024-01-02",1234.56], ...] one row per line
//	contributions.json           same shape, cumulative external cash
//	individualContributions.json same shape, per-day deposit increments
//	trades.json                  [{"date":...,"ticker":...,"side":...,"amount":...}, ...]
//	stockPriceHistory/<T>.json   [["2024-01-02",123.45], ...] sparse, per ticker
//
// Decoding drops malformed rows with a warning instead of failing the batch:
// a single bad line in years of history must not take the series down.

const (
	netWorthFile      = "networth.json"
	contributionsFile = "contributions.json"
	incrementsFile    = "individualContributions.json"
	tradesFile        = "trades.json"
	priceHistoryDir   = "stockPriceHistory"
)

// Store reads and writes the portfolio data directory.
type Store struct {
	dir string
}

// NewStore returns a store over the given data directory.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// decodeRows parses a JSON array of [date, number] rows into a history,
// dropping rows of the wrong shape, with unparseable dates, or with
// non-finite numbers.
func decodeRows(filename string, data []byte) (*History[float64], error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}

	h := &History[float64]{}
	for _, raw := range rows {
		var row []json.RawMessage
		if err := json.Unmarshal(raw, &row); err != nil || len(row) < 2 {
			log.Printf("warning: dropping malformed row in %q: %s", filename, string(raw))
			continue
		}
		var day Date
		var value float64
		if err := json.Unmarshal(row[0], &day); err != nil {
			log.Printf("warning: dropping row with invalid date in %q: %s", filename, string(raw))
			continue
		}
		if err := json.Unmarshal(row[1], &value); err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			log.Printf("warning: dropping row with invalid value in %q: %s", filename, string(raw))
			continue
		}
		h.Append(day, value)
	}
	return h, nil
}

func (s *Store) readRows(filename string) (*History[float64], error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, err
	}
	return decodeRows(filename, data)
}

// NetWorth loads the persisted net-worth mark series.
func (s *Store) NetWorth() (*History[float64], error) {
	return s.readRows(netWorthFile)
}

// Contributions loads the persisted cumulative contribution series.
func (s *Store) Contributions() (*History[float64], error) {
	return s.readRows(contributionsFile)
}

// ContributionIncrements loads the per-day deposit increments, summing
// multiple deposits on the same day. A missing file is an empty map: the
// increments are optional.
func (s *Store) ContributionIncrements() (map[Date]float64, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, incrementsFile))
	if os.IsNotExist(err) {
		return map[Date]float64{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", incrementsFile, err)
	}
	increments := make(map[Date]float64)
	for _, raw := range rows {
		var row []json.RawMessage
		if err := json.Unmarshal(raw, &row); err != nil || len(row) < 2 {
			log.Printf("warning: dropping malformed row in %q: %s", incrementsFile, string(raw))
			continue
		}
		var day Date
		var amount float64
		if json.Unmarshal(row[0], &day) != nil || json.Unmarshal(row[1], &amount) != nil {
			log.Printf("warning: dropping malformed row in %q: %s", incrementsFile, string(raw))
			continue
		}
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}
		increments[day] += amount
	}
	return increments, nil
}

// Trades loads the trade ledger. Malformed entries are dropped with a
// warning; the ledger is not sorted here, replay sorts it.
func (s *Store) Trades() ([]Trade, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tradesFile))
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", tradesFile, err)
	}

	var trades []Trade
	for _, raw := range rows {
		var t Trade
		if err := json.Unmarshal(raw, &t); err != nil || !t.Valid() {
			log.Printf("warning: dropping malformed trade in %q: %s", tradesFile, string(raw))
			continue
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// Market loads the price histories of the given tickers. A ticker with no
// price file simply has no data, that is an expected gap, not an error.
func (s *Store) Market(tickers []string) (*MarketData, error) {
	market := NewMarketData()
	for _, ticker := range tickers {
		h, err := s.Prices(ticker)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for on, price := range h.Values() {
			market.Add(ticker, on, price)
		}
	}
	return market, nil
}

// Prices loads the price history file of one ticker.
func (s *Store) Prices(ticker string) (*History[float64], error) {
	filename := filepath.Join(priceHistoryDir, ticker+".json")
	return s.readRows(filename)
}

// formatRow renders one [date, value] row the way the files store it.
func formatRow(day Date, value float64) string {
	return fmt.Sprintf("[%q,%s]", day.String(), strconv.FormatFloat(value, 'f', -1, 64))
}

// writeRows writes a history as a JSON array with one row per line.
func (s *Store) writeRows(filename string, h *History[float64]) error {
	var b strings.Builder
	b.WriteString("[\n")
	i, n := 0, h.Len()
	for day, value := range h.Values() {
		b.WriteString(formatRow(day, value))
		i++
		if i < n {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("]\n")

	path := filepath.Join(s.dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// WriteNetWorth persists the net-worth mark series.
func (s *Store) WriteNetWorth(h *History[float64]) error {
	return s.writeRows(netWorthFile, h)
}

// WriteContributions persists the cumulative contribution series.
func (s *Store) WriteContributions(h *History[float64]) error {
	return s.writeRows(contributionsFile, h)
}

// WritePrices persists the price history of one ticker.
func (s *Store) WritePrices(ticker string, h *History[float64]) error {
	return s.writeRows(filepath.Join(priceHistoryDir, ticker+".json"), h)
}

// AppendRecords appends extended series records to the persisted net-worth
// and contribution files. The extender guarantees the records start strictly
// after the persisted tail, so this is a pure append.
func (s *Store) AppendRecords(records []SeriesRecord) error {
	if len(records) == 0 {
		return nil
	}

	netWorth, err := s.NetWorth()
	if err != nil {
		return err
	}
	contributions, err := s.Contributions()
	if err != nil {
		return err
	}

	for _, r := range records {
		netWorth.Append(r.Date, r.NetWorth)
		contributions.Append(r.Date, r.Contribution)
	}

	if err := s.WriteNetWorth(netWorth); err != nil {
		return err
	}
	return s.WriteContributions(contributions)
}
