package folioscout

import (
	"slices"
	"strings"
)

// SummaryReport is the rendered view of the latest snapshot: the headline
// figures plus the per-holding breakdown.
type SummaryReport struct {
	Date         Date
	Currency     string
	NetWorth     Money
	Contribution Money
	NetGain      Money
	TWRR         Percent
	Holdings     []HoldingLine
}

// HoldingLine is one row of the holdings table.
type HoldingLine struct {
	Ticker    string
	Value     Money
	Weight    Percent
	Return    Percent
	HasReturn bool // false when the holding has no meaningful return
}

// NewSummaryReport builds the summary of the last snapshot of a series.
func NewSummaryReport(snapshots []DailySnapshot, currency string) (*SummaryReport, error) {
	if len(snapshots) == 0 {
		return nil, ErrNoMarks
	}
	last := snapshots[len(snapshots)-1]

	report := &SummaryReport{
		Date:         last.Date,
		Currency:     currency,
		NetWorth:     NewMoneyFromFloat(last.NetWorth, currency),
		Contribution: NewMoneyFromFloat(last.Contribution, currency),
		NetGain:      NewMoneyFromFloat(last.NetGain, currency),
		TWRR:         last.TWRR,
	}

	for ticker, value := range last.HoldingsValue {
		if !(value > 0) {
			continue
		}
		line := HoldingLine{
			Ticker: ticker,
			Value:  NewMoneyFromFloat(value, currency),
			Weight: last.HoldingsWeight[ticker],
		}
		line.Return, line.HasReturn = last.ReturnPercent[ticker]
		report.Holdings = append(report.Holdings, line)
	}
	// Largest holdings first, ticker as tiebreak to keep the output stable.
	slices.SortFunc(report.Holdings, func(a, b HoldingLine) int {
		va := a.Weight
		vb := b.Weight
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return strings.Compare(a.Ticker, b.Ticker)
		}
	})

	return report, nil
}

// HistoryReport is a date/value table for one metric of the snapshot series.
type HistoryReport struct {
	Metric   Metric
	Currency string
	Entries  []HistoryEntry
}

type HistoryEntry struct {
	Date  Date
	Value Money
	TWRR  Percent
}

// NewHistoryReport projects a snapshot series onto one metric over a date
// range.
func NewHistoryReport(snapshots []DailySnapshot, metric Metric, currency string, rng Range) *HistoryReport {
	report := &HistoryReport{Metric: metric, Currency: currency}
	for i := range snapshots {
		s := &snapshots[i]
		if !rng.Contains(s.Date) {
			continue
		}
		report.Entries = append(report.Entries, HistoryEntry{
			Date:  s.Date,
			Value: NewMoneyFromFloat(s.Value(metric), currency),
			TWRR:  s.TWRR,
		})
	}
	return report
}
