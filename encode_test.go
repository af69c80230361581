package folioscout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RowsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	h := &History[float64]{}
	h.Append(NewDate(2024, 1, 2), 1234.56)
	h.Append(NewDate(2024, 1, 3), 1240)

	if err := s.WriteNetWorth(h); err != nil {
		t.Fatalf("WriteNetWorth() error = %v", err)
	}

	t.Run("one row per line", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(s.Dir(), "networth.json"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		want := "[\n[\"2024-01-02\",1234.56],\n[\"2024-01-03\",1240]\n]\n"
		if string(data) != want {
			t.Errorf("file = %q, want %q", data, want)
		}
	})

	t.Run("reads back identical", func(t *testing.T) {
		got, err := s.NetWorth()
		if err != nil {
			t.Fatalf("NetWorth() error = %v", err)
		}
		if got.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", got.Len())
		}
		if v, ok := got.Get(NewDate(2024, 1, 2)); !ok || v != 1234.56 {
			t.Errorf("Get() = %v, %v, want 1234.56, true", v, ok)
		}
	})
}

func TestStore_DropsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	content := `[
["2024-01-02",1000],
["not-a-date",1000],
["2024-01-03"],
["2024-01-04","NaN"],
["2024-01-05",1100]
]
`
	if err := os.WriteFile(filepath.Join(dir, "networth.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := NewStore(dir).NetWorth()
	if err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (three rows dropped)", h.Len())
	}
}

func TestStore_Trades(t *testing.T) {
	dir := t.TempDir()
	content := `[
{"date":"2024-01-02","ticker":"acme","side":"buy","amount":1000},
{"date":"2024-01-03","ticker":"","side":"BUY","amount":500},
{"date":"2024-01-04","ticker":"ACME","side":"SELL","amount":-1}
]
`
	if err := os.WriteFile(filepath.Join(dir, "trades.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	trades, err := NewStore(dir).Trades()
	if err != nil {
		t.Fatalf("Trades() error = %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("len(trades) = %d, want 1 (invalid entries dropped)", len(trades))
	}
	if trades[0].Ticker != "ACME" || trades[0].Side != Buy {
		t.Errorf("trades[0] = %+v", trades[0])
	}
}

func TestStore_ContributionIncrements(t *testing.T) {
	t.Run("missing file is empty", func(t *testing.T) {
		got, err := NewStore(t.TempDir()).ContributionIncrements()
		if err != nil {
			t.Fatalf("ContributionIncrements() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("same-day deposits sum", func(t *testing.T) {
		dir := t.TempDir()
		content := `[["2024-01-02",100],["2024-01-02",50],["2024-01-03",25]]`
		if err := os.WriteFile(filepath.Join(dir, "individualContributions.json"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		got, err := NewStore(dir).ContributionIncrements()
		if err != nil {
			t.Fatalf("ContributionIncrements() error = %v", err)
		}
		if got[NewDate(2024, 1, 2)] != 150 {
			t.Errorf("increments[2024-01-02] = %v, want 150", got[NewDate(2024, 1, 2)])
		}
	})
}

func TestStore_MarketSkipsAbsentPriceFiles(t *testing.T) {
	s := NewStore(t.TempDir())

	prices := &History[float64]{}
	prices.Append(NewDate(2024, 1, 2), 10)
	if err := s.WritePrices("ACME", prices); err != nil {
		t.Fatalf("WritePrices() error = %v", err)
	}

	market, err := s.Market([]string{"ACME", "GHOST"})
	if err != nil {
		t.Fatalf("Market() error = %v", err)
	}
	if !market.Has("ACME") {
		t.Error("Has(ACME) = false, want true")
	}
	if market.Has("GHOST") {
		t.Error("Has(GHOST) = true, want false")
	}
}

func TestStore_AppendRecords(t *testing.T) {
	s := NewStore(t.TempDir())

	netWorth := (&History[float64]{}).Append(NewDate(2024, 1, 2), 1000)
	contributions := (&History[float64]{}).Append(NewDate(2024, 1, 2), 1000)
	if err := s.WriteNetWorth(netWorth); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteContributions(contributions); err != nil {
		t.Fatal(err)
	}

	records := []SeriesRecord{
		{Date: NewDate(2024, 1, 3), NetWorth: 1100, Contribution: 1000},
		{Date: NewDate(2024, 1, 4), NetWorth: 1200.5, Contribution: 1100},
	}
	if err := s.AppendRecords(records); err != nil {
		t.Fatalf("AppendRecords() error = %v", err)
	}

	got, err := s.NetWorth()
	if err != nil {
		t.Fatalf("NetWorth() error = %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}
	if day, v := got.Latest(); day != NewDate(2024, 1, 4) || v != 1200.5 {
		t.Errorf("Latest() = %s, %v, want 2024-01-04, 1200.5", day, v)
	}
}
