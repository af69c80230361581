package folioscout

import (
	"errors"
	"math"
	"testing"
)

// buildFixture is a small portfolio: one instrument bought on the first day,
// a deposit later, quotes sparse on purpose.
func buildFixture() (marks, contributions *History[float64], trades []Trade, market *MarketData) {
	d0, d1, d2 := NewDate(2024, 1, 2), NewDate(2024, 1, 3), NewDate(2024, 1, 4)

	marks = &History[float64]{}
	marks.Append(d0, 1000).Append(d1, 1100).Append(d2, 1200)

	contributions = &History[float64]{}
	contributions.Append(d0, 1000).Append(d2, 1100)

	trades = []Trade{
		{Date: d0, Ticker: "ACME", Side: Buy, Amount: 1000},
	}

	market = NewMarketData()
	market.Add("ACME", d0, 10)
	market.Add("ACME", d2, 12)
	return
}

func TestBuildSnapshotSeries(t *testing.T) {
	marks, contributions, trades, market := buildFixture()

	snapshots, err := BuildSnapshotSeries(marks, contributions, trades, market)
	if err != nil {
		t.Fatalf("BuildSnapshotSeries() error = %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("len(snapshots) = %d, want 3", len(snapshots))
	}

	t.Run("first day is the TWRR identity", func(t *testing.T) {
		if !snapshots[0].TWRR.Equal(0) {
			t.Errorf("TWRR[0] = %v, want 0%%", snapshots[0].TWRR)
		}
	})

	t.Run("contribution forward fills between samples", func(t *testing.T) {
		if got := snapshots[1].Contribution; got != 1000 {
			t.Errorf("Contribution[1] = %v, want 1000 (carried forward)", got)
		}
		if got := snapshots[2].Contribution; got != 1100 {
			t.Errorf("Contribution[2] = %v, want 1100", got)
		}
	})

	t.Run("net gain is mark minus contribution", func(t *testing.T) {
		wants := []float64{0, 100, 100}
		for i, want := range wants {
			if got := snapshots[i].NetGain; got != want {
				t.Errorf("NetGain[%d] = %v, want %v", i, got, want)
			}
		}
	})

	t.Run("TWRR chains with flow-adjusted baselines", func(t *testing.T) {
		// d0->d1: no flow, 1100/1000. d1->d2: 100 deposited, 1200/1200.
		want := Percent((1100.0/1000.0 - 1) * 100)
		if !snapshots[1].TWRR.Equal(want) {
			t.Errorf("TWRR[1] = %v, want %v", snapshots[1].TWRR, want)
		}
		if !snapshots[2].TWRR.Equal(want) {
			t.Errorf("TWRR[2] = %v, want %v (neutral second period)", snapshots[2].TWRR, want)
		}
	})

	t.Run("precomputed TWRR matches the range computation", func(t *testing.T) {
		points := Points(snapshots)
		for i, s := range snapshots {
			if got := TWRR(points, 0, i); !got.Equal(s.TWRR) {
				t.Errorf("TWRR(points, 0, %d) = %v, want precomputed %v", i, got, s.TWRR)
			}
		}
	})

	t.Run("holdings valued with forward-filled prices", func(t *testing.T) {
		// 100 shares at the last known price of 10 on d1, 12 on d2.
		if got := snapshots[1].HoldingsValue["ACME"]; got != 1000 {
			t.Errorf("HoldingsValue[1] = %v, want 1000", got)
		}
		if got := snapshots[2].HoldingsValue["ACME"]; got != 1200 {
			t.Errorf("HoldingsValue[2] = %v, want 1200", got)
		}
	})

	t.Run("single holding carries full weight", func(t *testing.T) {
		if got := snapshots[2].HoldingsWeight["ACME"]; !got.Equal(100) {
			t.Errorf("HoldingsWeight = %v, want 100%%", got)
		}
	})

	t.Run("per-instrument return", func(t *testing.T) {
		ret, ok := snapshots[2].ReturnPercent["ACME"]
		if !ok {
			t.Fatal("ReturnPercent[ACME] missing")
		}
		if !ret.Equal(Percent(20)) {
			t.Errorf("ReturnPercent[ACME] = %v, want 20%%", ret)
		}
	})
}

func TestBuildSnapshotSeries_NoMarksIsFatal(t *testing.T) {
	_, err := BuildSnapshotSeries(&History[float64]{}, nil, nil, nil)
	if !errors.Is(err, ErrNoMarks) {
		t.Errorf("BuildSnapshotSeries() error = %v, want ErrNoMarks", err)
	}
}

func TestBuildSnapshotSeries_UnpricedInstrument(t *testing.T) {
	// An instrument with no price data at all values to zero and reports no
	// return, but never fails the build.
	d0 := NewDate(2024, 1, 2)
	marks := (&History[float64]{}).Append(d0, 500)
	trades := []Trade{{Date: d0, Ticker: "GHOST", Side: Buy, Amount: 500}}

	snapshots, err := BuildSnapshotSeries(marks, nil, trades, NewMarketData())
	if err != nil {
		t.Fatalf("BuildSnapshotSeries() error = %v", err)
	}
	if got := snapshots[0].HoldingsValue["GHOST"]; got != 0 {
		t.Errorf("HoldingsValue[GHOST] = %v, want 0", got)
	}
	if _, ok := snapshots[0].ReturnPercent["GHOST"]; ok {
		t.Error("ReturnPercent[GHOST] defined, want absent")
	}
	if got := snapshots[0].HoldingsWeight["GHOST"]; got != 0 {
		t.Errorf("HoldingsWeight[GHOST] = %v, want 0", got)
	}
}

func TestBuildSnapshotSeries_QuietDayCarriesStateForward(t *testing.T) {
	marks, contributions, trades, market := buildFixture()
	snapshots, err := BuildSnapshotSeries(marks, contributions, trades, market)
	if err != nil {
		t.Fatalf("BuildSnapshotSeries() error = %v", err)
	}
	// d1 has no trade and no contribution sample: positions and
	// contributions are those of d0.
	if snapshots[1].HoldingsValue["ACME"] != snapshots[0].HoldingsValue["ACME"] {
		t.Errorf("holding value changed on a quiet day: %v -> %v",
			snapshots[0].HoldingsValue["ACME"], snapshots[1].HoldingsValue["ACME"])
	}
}

func TestMetric(t *testing.T) {
	s := DailySnapshot{
		NetWorth:      1200,
		Contribution:  1100,
		HoldingsValue: map[string]float64{"ACME": 700},
	}

	tests := []struct {
		selector string
		want     float64
	}{
		{"networth", 1200},
		{"", 1200},
		{"contributions", 1100},
		{"acme", 700},
		{"GHOST", 0},
	}
	for _, tc := range tests {
		t.Run(tc.selector, func(t *testing.T) {
			if got := s.Value(ParseMetric(tc.selector)); got != tc.want {
				t.Errorf("Value(ParseMetric(%q)) = %v, want %v", tc.selector, got, tc.want)
			}
		})
	}
}

func TestTWRRBetween(t *testing.T) {
	marks, contributions, trades, market := buildFixture()
	snapshots, err := BuildSnapshotSeries(marks, contributions, trades, market)
	if err != nil {
		t.Fatalf("BuildSnapshotSeries() error = %v", err)
	}

	t.Run("whole range matches the precomputed tail", func(t *testing.T) {
		got, err := TWRRBetween(snapshots, snapshots[0].Date, snapshots[2].Date)
		if err != nil {
			t.Fatalf("TWRRBetween() error = %v", err)
		}
		if !got.Equal(snapshots[2].TWRR) {
			t.Errorf("TWRRBetween() = %v, want %v", got, snapshots[2].TWRR)
		}
	})

	t.Run("sub range", func(t *testing.T) {
		got, err := TWRRBetween(snapshots, snapshots[1].Date, snapshots[2].Date)
		if err != nil {
			t.Fatalf("TWRRBetween() error = %v", err)
		}
		// d1->d2 is the neutral period: 1200 / (1100 + 100).
		if !got.Equal(0) {
			t.Errorf("TWRRBetween() = %v, want 0%%", got)
		}
	})

	t.Run("range before the series", func(t *testing.T) {
		if _, err := TWRRBetween(snapshots, NewDate(2020, 1, 1), NewDate(2020, 1, 2)); err == nil {
			t.Error("TWRRBetween() error = nil, want error for a range before the series")
		}
	})
}

func TestBuildSnapshotSeries_NonFiniteRatioIsNeutral(t *testing.T) {
	d0, d1 := NewDate(2024, 1, 2), NewDate(2024, 1, 3)
	marks := (&History[float64]{}).Append(d0, math.SmallestNonzeroFloat64)
	marks.Append(d1, 1000)
	contributions := (&History[float64]{}).Append(d0, 0.0)

	snapshots, err := BuildSnapshotSeries(marks, contributions, nil, nil)
	if err != nil {
		t.Fatalf("BuildSnapshotSeries() error = %v", err)
	}
	twrr := float64(snapshots[1].TWRR)
	if math.IsNaN(twrr) || math.IsInf(twrr, 0) {
		t.Errorf("TWRR[1] = %v, want finite", twrr)
	}
}
