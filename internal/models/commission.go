package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission record statuses
const (
	CommissionPending   = "pending"
	CommissionConfirmed = "confirmed"
	CommissionPaid      = "paid"
)

// CommissionRecord is a single posted amount for a variable income source.
// Every insert triggers recomputation of the source's 3-month average.
type CommissionRecord struct {
	ID             int64           `json:"id"`
	IncomeSourceID int64           `json:"income_source_id"`
	UserID         int64           `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	PeriodMonth    int             `json:"period_month"`
	PeriodYear     int             `json:"period_year"`
	Status         string          `json:"status"`
	ConfirmedAt    *time.Time      `json:"confirmed_at,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
