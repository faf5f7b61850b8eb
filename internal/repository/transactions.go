package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/models"
)

// ledgerClause builds the WHERE fragment that scopes a query to either the
// user's personal ledger (account_id IS NULL) or a shared account's pooled
// transactions. Placeholder numbering starts at next.
func ledgerClause(userID int64, accountID *int64, next int) (string, []interface{}, int) {
	if accountID == nil {
		return fmt.Sprintf("user_id = $%d AND account_id IS NULL", next), []interface{}{userID}, next + 1
	}
	return fmt.Sprintf("account_id = $%d", next), []interface{}{*accountID}, next + 1
}

// CreateTransaction inserts a transaction and fills in its id and timestamps.
func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	query := `
		INSERT INTO cartera.transactions
			(user_id, account_id, amount, type, title, category, date,
			 is_recurring, recurrence_period, next_occurrence, parent_id,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			 CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		tx.UserID, tx.AccountID, tx.Amount, tx.Type, tx.Title, tx.Category, tx.Date,
		tx.IsRecurring, tx.RecurrencePeriod, tx.NextOccurrence, tx.ParentID).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction owned by the user.
func (r *Repository) DeleteTransaction(id, userID int64) error {
	res, err := r.db.Exec(`DELETE FROM cartera.transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListTransactions returns the user's transactions in the ledger scope,
// newest first, optionally bounded by date.
func (r *Repository) ListTransactions(userID int64, accountID *int64, from, to *time.Time) ([]models.Transaction, error) {
	clause, args, next := ledgerClause(userID, accountID, 1)
	query := `
		SELECT id, user_id, account_id, amount, type, title, category, date,
		       is_recurring, recurrence_period, next_occurrence, parent_id,
		       created_at, updated_at
		FROM cartera.transactions
		WHERE ` + clause
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", next)
		args = append(args, *from)
		next++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date < $%d", next)
		args = append(args, *to)
		next++
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// DueRecurringTemplates returns the user's recurring templates whose next
// occurrence is at or before the cutoff.
func (r *Repository) DueRecurringTemplates(userID int64, cutoff time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, amount, type, title, category, date,
		       is_recurring, recurrence_period, next_occurrence, parent_id,
		       created_at, updated_at
		FROM cartera.transactions
		WHERE user_id = $1 AND is_recurring = TRUE
		  AND next_occurrence IS NOT NULL AND next_occurrence <= $2
		ORDER BY next_occurrence ASC`
	rows, err := r.db.Query(query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to select due templates: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// SetNextOccurrence advances (or clears) a template's next occurrence.
func (r *Repository) SetNextOccurrence(id int64, next *time.Time) error {
	_, err := r.db.Exec(`
		UPDATE cartera.transactions
		SET next_occurrence = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`, id, next)
	if err != nil {
		return fmt.Errorf("failed to advance template %d: %w", id, err)
	}
	return nil
}

// UserIDsWithDueTemplates returns every user that has at least one recurring
// template due at the cutoff. Used by the scheduled materialization run.
func (r *Repository) UserIDsWithDueTemplates(cutoff time.Time) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT user_id
		FROM cartera.transactions
		WHERE is_recurring = TRUE AND next_occurrence IS NOT NULL AND next_occurrence <= $1`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to select users with due templates: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ExpenseWindow aggregates expense transactions in [from, to): the total
// amount and the number of distinct calendar months that saw at least one
// expense. The month count is what the average divides by, so months with no
// recorded spend never drag it down.
func (r *Repository) ExpenseWindow(userID int64, accountID *int64, from, to time.Time) (decimal.Decimal, int, error) {
	clause, args, next := ledgerClause(userID, accountID, 1)
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount), 0), COUNT(DISTINCT to_char(date, 'YYYY-MM'))
		FROM cartera.transactions
		WHERE %s AND type = 'expense' AND date >= $%d AND date < $%d`, clause, next, next+1)
	args = append(args, from, to)

	var total decimal.Decimal
	var months int
	if err := r.db.QueryRow(query, args...).Scan(&total, &months); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to aggregate expense window: %w", err)
	}
	return total, months, nil
}

// MonthTotals sums income and expense amounts for the given calendar month.
func (r *Repository) MonthTotals(userID int64, accountID *int64, year int, month time.Month) (decimal.Decimal, decimal.Decimal, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	clause, args, next := ledgerClause(userID, accountID, 1)
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM cartera.transactions
		WHERE %s AND date >= $%d AND date < $%d`, clause, next, next+1)
	args = append(args, start, end)

	var income, expense decimal.Decimal
	if err := r.db.QueryRow(query, args...).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to aggregate month totals: %w", err)
	}
	return income, expense, nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.Amount, &tx.Type,
			&tx.Title, &tx.Category, &tx.Date, &tx.IsRecurring, &tx.RecurrencePeriod,
			&tx.NextOccurrence, &tx.ParentID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
