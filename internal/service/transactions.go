package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/models"
	"github.com/fercho159-aq/cartera/internal/period"
)

func validRecurrencePeriod(p string) bool {
	switch p {
	case models.RecurrenceNone, models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
		return true
	}
	return false
}

// CreateTransaction records a transaction in the caller's ledger. Recurring
// templates get an initial next occurrence one period after their date.
func (s *Service) CreateTransaction(userID int64, tx *models.Transaction) (*models.Transaction, error) {
	if tx.Title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if tx.Type != models.TransactionIncome && tx.Type != models.TransactionExpense {
		return nil, fmt.Errorf("%w: type must be income or expense", models.ErrValidation)
	}
	if tx.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	if tx.IsRecurring && !validRecurrencePeriod(tx.RecurrencePeriod) {
		return nil, fmt.Errorf("%w: unknown recurrence period %q", models.ErrValidation, tx.RecurrencePeriod)
	}
	if err := s.checkLedger(userID, tx.AccountID); err != nil {
		return nil, err
	}

	tx.UserID = userID
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}
	if !tx.IsRecurring {
		tx.RecurrencePeriod = models.RecurrenceNone
		tx.NextOccurrence = nil
	} else if tx.NextOccurrence == nil {
		if next, ok := period.NextOccurrence(tx.Date, tx.RecurrencePeriod); ok {
			tx.NextOccurrence = &next
		}
	}

	if err := s.store.CreateTransaction(tx); err != nil {
		return nil, err
	}
	s.log.Infof("Transaction %d created for user %d: %s %s", tx.ID, userID, tx.Type, tx.Amount)
	return tx, nil
}

// ListTransactions materializes due recurring instances for the user, then
// returns the transactions in the requested ledger scope.
func (s *Service) ListTransactions(userID int64, accountID *int64, from, to *time.Time) ([]models.Transaction, error) {
	if err := s.checkLedger(userID, accountID); err != nil {
		return nil, err
	}
	if err := s.ProcessRecurring(userID); err != nil {
		return nil, err
	}
	return s.store.ListTransactions(userID, accountID, from, to)
}

// DeleteTransaction removes a transaction owned by the caller.
func (s *Service) DeleteTransaction(id, userID int64) error {
	if err := s.store.DeleteTransaction(id, userID); err != nil {
		return err
	}
	s.log.Infof("Transaction %d deleted by user %d", id, userID)
	return nil
}

// ProcessRecurring materializes one instance for each of the user's recurring
// templates that has come due, then advances each template's next occurrence
// by exactly one period from its prior value. A template that has been
// dormant for several periods still fires only once per call; the next call
// picks it up again if it remains due. The read-insert-advance sequence is
// not wrapped in a storage transaction.
func (s *Service) ProcessRecurring(userID int64) error {
	now := s.now()
	templates, err := s.store.DueRecurringTemplates(userID, now)
	if err != nil {
		return err
	}

	for i := range templates {
		tpl := &templates[i]

		occurredAt := now
		if tpl.NextOccurrence != nil {
			occurredAt = *tpl.NextOccurrence
		}

		instance := &models.Transaction{
			UserID:           tpl.UserID,
			AccountID:        tpl.AccountID,
			Amount:           tpl.Amount,
			Type:             tpl.Type,
			Title:            tpl.Title,
			Category:         tpl.Category,
			Date:             occurredAt,
			IsRecurring:      false,
			RecurrencePeriod: models.RecurrenceNone,
			ParentID:         &tpl.ID,
		}
		if err := s.store.CreateTransaction(instance); err != nil {
			return fmt.Errorf("failed to materialize template %d: %w", tpl.ID, err)
		}

		var nextPtr *time.Time
		if next, ok := period.NextOccurrence(occurredAt, tpl.RecurrencePeriod); ok {
			nextPtr = &next
		}
		if err := s.store.SetNextOccurrence(tpl.ID, nextPtr); err != nil {
			return fmt.Errorf("failed to advance template %d: %w", tpl.ID, err)
		}

		s.log.Infof("Materialized recurring transaction %d from template %d for user %d",
			instance.ID, tpl.ID, userID)
		s.notifyRecurring(userID, instance)
	}
	return nil
}

// MaterializeAllDue runs recurrence processing for every user with a due
// template. Invoked by the cron schedule when one is configured.
func (s *Service) MaterializeAllDue() {
	userIDs, err := s.store.UserIDsWithDueTemplates(s.now())
	if err != nil {
		s.log.Errorf("Failed to find users with due templates: %v", err)
		return
	}
	for _, id := range userIDs {
		if err := s.ProcessRecurring(id); err != nil {
			s.log.Errorf("Failed to process recurring transactions for user %d: %v", id, err)
		}
	}
}

func (s *Service) notifyRecurring(userID int64, tx *models.Transaction) {
	if s.notifier == nil {
		return
	}
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		s.log.Errorf("Failed to load user %d for notification: %v", userID, err)
		return
	}
	if err := s.notifier.RecurringPosted(user, tx); err != nil {
		s.log.Errorf("Failed to notify user %d: %v", userID, err)
	}
}
