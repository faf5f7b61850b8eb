package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastResult is the full budgeting payload returned to the client.
type ForecastResult struct {
	CurrentBalance    decimal.Decimal  `json:"current_balance"`
	AvgMonthlyExpense decimal.Decimal  `json:"avg_monthly_expense"`
	AvgDailyExpense   decimal.Decimal  `json:"avg_daily_expense"`
	SmartDailyBudget  decimal.Decimal  `json:"smart_daily_budget"`
	DaysUntilNextPay  int              `json:"days_until_next_pay"`
	NextPayday        *NextPayday      `json:"next_payday"`
	IncomeSources     []ForecastSource `json:"income_sources"`
	Forecast          []ForecastMonth  `json:"forecast"`
}

// NextPayday describes the nearest upcoming inflow across all sources.
type NextPayday struct {
	Day       int            `json:"day"`
	DaysUntil int            `json:"days_until"`
	Sources   []PaydaySource `json:"sources"`
}

// PaydaySource is one source's contribution to a payday.
type PaydaySource struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ForecastSource summarizes an income source as used by the projection.
type ForecastSource struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	PayDays   []int64         `json:"pay_days"`
}

// ForecastMonth is one projected month. ProjectedBalance here is the coarse
// month total (carry-in + income - average expense); the paydays carry their
// own running balances, which pace expenses between inflows and may differ.
type ForecastMonth struct {
	Month             string          `json:"month"`
	MonthNum          int             `json:"month_num"`
	Year              int             `json:"year"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	ProjectedExpenses decimal.Decimal `json:"projected_expenses"`
	ProjectedBalance  decimal.Decimal `json:"projected_balance"`
	Paydays           []ForecastDay   `json:"paydays"`
}

// ForecastDay is a single payday within a projected month.
type ForecastDay struct {
	Date             time.Time       `json:"date"`
	DayOfMonth       int             `json:"day_of_month"`
	Income           decimal.Decimal `json:"income"`
	IncomeDetails    []PaydaySource  `json:"income_details"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	IsPayday         bool            `json:"is_payday"`
}
