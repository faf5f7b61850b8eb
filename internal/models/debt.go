package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt represents money owed to the user by a third party.
type Debt struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	DebtorName string          `json:"debtor_name"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	IsPaid     bool            `json:"is_paid"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
