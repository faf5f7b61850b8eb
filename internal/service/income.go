package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/models"
)

func validIncomeSource(src *models.IncomeSource) error {
	if src.Name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if src.Type != models.IncomeFixed && src.Type != models.IncomeVariable {
		return fmt.Errorf("%w: type must be fixed or variable", models.ErrValidation)
	}
	if src.BaseAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: base amount must be positive", models.ErrValidation)
	}
	switch src.Frequency {
	case models.FrequencyWeekly:
		// Pay days are implicit for weekly sources.
	case models.FrequencyBiweekly, models.FrequencyMonthly, models.FrequencyCustom:
		if len(src.PayDays) == 0 {
			return fmt.Errorf("%w: pay days are required for %s frequency", models.ErrValidation, src.Frequency)
		}
	default:
		return fmt.Errorf("%w: unknown frequency %q", models.ErrValidation, src.Frequency)
	}
	for _, day := range src.PayDays {
		if day < 1 || day > 31 {
			return fmt.Errorf("%w: pay day %d out of range 1-31", models.ErrValidation, day)
		}
	}
	return nil
}

// CreateIncomeSource validates and persists a new income source.
func (s *Service) CreateIncomeSource(userID int64, src *models.IncomeSource) (*models.IncomeSource, error) {
	if err := validIncomeSource(src); err != nil {
		return nil, err
	}
	if err := s.checkLedger(userID, src.AccountID); err != nil {
		return nil, err
	}
	src.UserID = userID
	src.IsActive = true
	src.IncludeInForecast = true
	if err := s.store.CreateIncomeSource(src); err != nil {
		return nil, err
	}
	s.log.Infof("Income source %d (%s) created for user %d", src.ID, src.Name, userID)
	return src, nil
}

// UpdateIncomeSource applies edits to an existing source the caller owns.
// Sources are soft-disabled via IsActive/IncludeInForecast, never deleted.
func (s *Service) UpdateIncomeSource(userID int64, src *models.IncomeSource) (*models.IncomeSource, error) {
	if err := validIncomeSource(src); err != nil {
		return nil, err
	}
	existing, err := s.store.IncomeSourceByID(src.ID, userID)
	if err != nil {
		return nil, err
	}
	src.UserID = userID
	src.AccountID = existing.AccountID
	if err := s.store.UpdateIncomeSource(src); err != nil {
		return nil, err
	}
	s.log.Infof("Income source %d updated for user %d", src.ID, userID)
	return src, nil
}

// ListIncomeSources returns every source the caller has configured.
func (s *Service) ListIncomeSources(userID int64) ([]models.IncomeSource, error) {
	return s.store.ListIncomeSources(userID)
}

// PostCommission records a commission for a variable income source and
// recomputes the source's trailing average.
func (s *Service) PostCommission(userID int64, rec *models.CommissionRecord) (*models.CommissionRecord, error) {
	if rec.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	src, err := s.store.IncomeSourceByID(rec.IncomeSourceID, userID)
	if err != nil {
		return nil, err
	}
	if src.Type != models.IncomeVariable {
		return nil, fmt.Errorf("%w: commissions apply to variable sources only", models.ErrValidation)
	}

	rec.UserID = userID
	if rec.Status == "" {
		rec.Status = models.CommissionPending
	}
	now := s.now()
	switch rec.Status {
	case models.CommissionPending:
	case models.CommissionConfirmed:
		rec.ConfirmedAt = &now
	case models.CommissionPaid:
		rec.ConfirmedAt = &now
		rec.PaidAt = &now
	default:
		return nil, fmt.Errorf("%w: unknown commission status %q", models.ErrValidation, rec.Status)
	}
	if rec.PeriodMonth == 0 {
		rec.PeriodMonth = int(now.Month())
		rec.PeriodYear = now.Year()
	}

	if err := s.store.CreateCommission(rec); err != nil {
		return nil, err
	}
	if err := s.RecomputeAverage(rec.IncomeSourceID, userID); err != nil {
		return nil, err
	}
	s.log.Infof("Commission %d posted to income source %d for user %d", rec.ID, rec.IncomeSourceID, userID)
	return rec, nil
}

// RecomputeAverage rebuilds an income source's trailing 3-month average from
// its commission records, selected by creation timestamp. With no records in
// the window, the stored average stays as it is; otherwise the arithmetic
// mean overwrites it unconditionally.
func (s *Service) RecomputeAverage(incomeSourceID, userID int64) error {
	if _, err := s.store.IncomeSourceByID(incomeSourceID, userID); err != nil {
		return err
	}

	since := s.now().AddDate(0, -3, 0)
	records, err := s.store.CommissionsSince(incomeSourceID, since)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(records))))

	if err := s.store.SetIncomeSourceAverage(incomeSourceID, avg); err != nil {
		return err
	}
	s.log.Infof("Income source %d average recomputed over %d records: %s", incomeSourceID, len(records), avg)
	return nil
}
