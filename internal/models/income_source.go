package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income source types
const (
	IncomeFixed    = "fixed"
	IncomeVariable = "variable"
)

// Income source payment frequencies
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
	FrequencyCustom   = "custom"
)

// IncomeSource represents a configured source of income with its payday
// schedule. PayDays must be non-empty for every frequency except weekly,
// which is synthesized as four monthly slots. AverageLast3Months is written
// only by the averaging service and only for variable sources.
type IncomeSource struct {
	ID                 int64            `json:"id"`
	UserID             int64            `json:"user_id"`
	AccountID          *int64           `json:"account_id,omitempty"` // nil = personal ledger
	Name               string           `json:"name"`
	Type               string           `json:"type"`
	BaseAmount         decimal.Decimal  `json:"base_amount"`
	Frequency          string           `json:"frequency"`
	PayDays            []int64          `json:"pay_days"`
	MinExpected        *decimal.Decimal `json:"min_expected,omitempty"`
	MaxExpected        *decimal.Decimal `json:"max_expected,omitempty"`
	AverageLast3Months *decimal.Decimal `json:"average_last_3_months,omitempty"`
	IsActive           bool             `json:"is_active"`
	IncludeInForecast  bool             `json:"include_in_forecast"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// EffectiveAmount returns the amount the forecast should schedule for this
// source: the trailing 3-month average when one has been computed for a
// variable source, the configured base amount otherwise.
func (s *IncomeSource) EffectiveAmount() decimal.Decimal {
	if s.Type == IncomeVariable && s.AverageLast3Months != nil {
		return *s.AverageLast3Months
	}
	return s.BaseAmount
}
