package folioscout

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-01-02", NewDate(2024, 1, 2), false},
		{"2024-1-2", NewDate(2024, 1, 2), false},
		{"not-a-date", Date{}, true},
		{"2024/01/02", Date{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_AddNormalizes(t *testing.T) {
	if got := NewDate(2024, 1, 31).Add(1); got != NewDate(2024, 2, 1) {
		t.Errorf("Add(1) = %s, want 2024-02-01", got)
	}
	if got := NewDate(2024, 2, 28).Add(1); got != NewDate(2024, 2, 29) {
		t.Errorf("Add(1) = %s, want 2024-02-29 (leap year)", got)
	}
}

func TestDate_JSON(t *testing.T) {
	data, err := json.Marshal(NewDate(2024, 1, 2))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2024-01-02"` {
		t.Errorf("Marshal() = %s, want \"2024-01-02\"", data)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-1-2"`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d != NewDate(2024, 1, 2) {
		t.Errorf("Unmarshal() = %s, want 2024-01-02", d)
	}
}

func TestRange_Days(t *testing.T) {
	r := NewRange(NewDate(2024, 1, 30), NewDate(2024, 2, 2))
	var got []string
	for d := range r.Days() {
		got = append(got, d.String())
	}
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(got) != len(want) {
		t.Fatalf("Days() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Days() = %v, want %v", got, want)
		}
	}
}

func TestNewRange_SwapsReversedBounds(t *testing.T) {
	r := NewRange(NewDate(2024, 2, 1), NewDate(2024, 1, 1))
	if r.From != NewDate(2024, 1, 1) || r.To != NewDate(2024, 2, 1) {
		t.Errorf("NewRange() = %+v, want from 2024-01-01 to 2024-02-01", r)
	}
	if !r.Contains(NewDate(2024, 1, 15)) {
		t.Error("Contains(mid) = false, want true")
	}
	if r.Contains(NewDate(2024, 2, 2)) {
		t.Error("Contains(after) = true, want false")
	}
}
