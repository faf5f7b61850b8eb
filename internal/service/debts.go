package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/models"
)

// CreateDebt records money owed to the caller.
func (s *Service) CreateDebt(userID int64, debt *models.Debt) (*models.Debt, error) {
	if debt.DebtorName == "" {
		return nil, fmt.Errorf("%w: debtor name is required", models.ErrValidation)
	}
	if debt.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	debt.UserID = userID
	if err := s.store.CreateDebt(debt); err != nil {
		return nil, err
	}
	s.log.Infof("Debt %d created for user %d: %s owes %s", debt.ID, userID, debt.DebtorName, debt.Amount)
	return debt, nil
}

// ListDebts returns the caller's debts.
func (s *Service) ListDebts(userID int64) ([]models.Debt, error) {
	return s.store.ListDebts(userID)
}

// MarkDebtPaid settles a debt the caller owns.
func (s *Service) MarkDebtPaid(id, userID int64) error {
	if err := s.store.MarkDebtPaid(id, userID); err != nil {
		return err
	}
	s.log.Infof("Debt %d marked paid by user %d", id, userID)
	return nil
}
