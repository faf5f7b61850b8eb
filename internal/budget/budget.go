// Package budget derives spend-per-day figures from a balance and a horizon.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/period"
)

// Smart returns the daily budget given the current balance and the number of
// days until the next expected inflow. Non-positive balances yield zero
// rather than a negative daily budget.
func Smart(balance decimal.Decimal, daysUntilNextPay int) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if daysUntilNextPay < 1 {
		daysUntilNextPay = 1
	}
	return balance.Div(decimal.NewFromInt(int64(daysUntilNextPay)))
}

// MonthFallback is the presentation-layer fallback when no income sources are
// configured: spread the balance over the days remaining in the current month.
func MonthFallback(balance decimal.Decimal, now time.Time) decimal.Decimal {
	remaining := period.DaysInMonth(now.Year(), now.Month()) - now.Day()
	if remaining < 1 {
		remaining = 1
	}
	return Smart(balance, remaining)
}
