package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Recurrence periods for transaction templates
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// Transaction represents a financial transaction. A template (IsRecurring true)
// spawns dated instances that point back to it via ParentID; instances are
// never themselves recurring.
type Transaction struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	AccountID        *int64          `json:"account_id,omitempty"` // nil = personal ledger
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	Date             time.Time       `json:"date"`
	IsRecurring      bool            `json:"is_recurring"`
	RecurrencePeriod string          `json:"recurrence_period"`
	NextOccurrence   *time.Time      `json:"next_occurrence,omitempty"`
	ParentID         *int64          `json:"parent_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
