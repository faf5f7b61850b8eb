package period

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestClampDay(t *testing.T) {
	cases := []struct {
		day   int
		year  int
		month time.Month
		want  int
	}{
		{30, 2025, time.February, 28},
		{31, 2025, time.June, 30},
		{15, 2025, time.June, 15},
		{31, 2025, time.July, 31},
		{0, 2025, time.July, 1},
		{-3, 2025, time.July, 1},
	}
	for _, tc := range cases {
		if got := ClampDay(tc.day, tc.year, tc.month); got != tc.want {
			t.Errorf("ClampDay(%d, %d, %s) = %d, want %d", tc.day, tc.year, tc.month, got, tc.want)
		}
	}
}

func TestNextOccurrence(t *testing.T) {
	from := time.Date(2025, time.January, 31, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		period string
		want   time.Time
		ok     bool
	}{
		{"daily", time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC), true},
		{"weekly", time.Date(2025, time.February, 7, 8, 0, 0, 0, time.UTC), true},
		// Jan 31 + 1 month normalizes to Mar 3 per time.AddDate.
		{"monthly", time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC), true},
		{"none", time.Time{}, false},
		{"fortnightly", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			got, ok := NextOccurrence(from, tc.period)
			if ok != tc.ok {
				t.Fatalf("NextOccurrence(%s) ok = %v, want %v", tc.period, ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("NextOccurrence(%s) = %s, want %s", tc.period, got, tc.want)
			}
		})
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2025, time.June, 17, 23, 45, 0, 0, time.UTC))
	want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MonthStart = %s, want %s", got, want)
	}
}
