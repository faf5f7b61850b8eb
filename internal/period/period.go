// Package period provides the date arithmetic used by the recurrence
// processor and the forecast generator.
package period

import "time"

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a day-of-month to the actual length of the given month, so
// a configured day 31 lands on the 30th (or 28th/29th) in shorter months.
// Days below 1 clamp to 1.
func ClampDay(day, year int, month time.Month) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextOccurrence advances a recurring template's occurrence time by exactly
// one period. The second return value is false when the period does not
// recur (none or unrecognized), which stops the template.
func NextOccurrence(from time.Time, recurrencePeriod string) (time.Time, bool) {
	switch recurrencePeriod {
	case "daily":
		return from.AddDate(0, 0, 1), true
	case "weekly":
		return from.AddDate(0, 0, 7), true
	case "monthly":
		return from.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}
