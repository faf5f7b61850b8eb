package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSmart(t *testing.T) {
	cases := []struct {
		name    string
		balance int64
		days    int
		want    string
	}{
		{"even split", 1000, 10, "100"},
		{"zero balance", 0, 10, "0"},
		{"negative balance clamps to zero", -500, 10, "0"},
		{"zero days treated as one", 300, 0, "300"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Smart(decimal.NewFromInt(tc.balance), tc.days)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Smart(%d, %d) = %s, want %s", tc.balance, tc.days, got, tc.want)
			}
		})
	}
}

func TestMonthFallback(t *testing.T) {
	// June 10th leaves 20 days in the month.
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	got := MonthFallback(decimal.NewFromInt(2000), now)
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("MonthFallback = %s, want 100", got)
	}

	// Last day of the month divides by one, not zero.
	lastDay := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	got = MonthFallback(decimal.NewFromInt(50), lastDay)
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Errorf("MonthFallback on last day = %s, want 50", got)
	}
}
