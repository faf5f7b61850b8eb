package repository

import (
	"database/sql"
	"fmt"

	"github.com/fercho159-aq/cartera/internal/models"
)

// CreateDebt inserts a debt owed to the user.
func (r *Repository) CreateDebt(debt *models.Debt) error {
	query := `
		INSERT INTO cartera.debts (user_id, debtor_name, amount, note, due_date, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, debt.UserID, debt.DebtorName, debt.Amount, debt.Note, debt.DueDate).
		Scan(&debt.ID, &debt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

// DebtByID retrieves a debt owned by the user.
func (r *Repository) DebtByID(id, userID int64) (*models.Debt, error) {
	debt := &models.Debt{}
	query := `
		SELECT id, user_id, debtor_name, amount, note, due_date, is_paid, paid_at, created_at
		FROM cartera.debts
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&debt.ID, &debt.UserID, &debt.DebtorName, &debt.Amount, &debt.Note,
			&debt.DueDate, &debt.IsPaid, &debt.PaidAt, &debt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find debt: %w", err)
	}
	return debt, nil
}

// ListDebts returns the user's debts, unpaid first, newest first within each group.
func (r *Repository) ListDebts(userID int64) ([]models.Debt, error) {
	query := `
		SELECT id, user_id, debtor_name, amount, note, due_date, is_paid, paid_at, created_at
		FROM cartera.debts
		WHERE user_id = $1
		ORDER BY is_paid ASC, created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var out []models.Debt
	for rows.Next() {
		var debt models.Debt
		err := rows.Scan(&debt.ID, &debt.UserID, &debt.DebtorName, &debt.Amount, &debt.Note,
			&debt.DueDate, &debt.IsPaid, &debt.PaidAt, &debt.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		out = append(out, debt)
	}
	return out, rows.Err()
}

// MarkDebtPaid flags a debt as settled.
func (r *Repository) MarkDebtPaid(id, userID int64) error {
	res, err := r.db.Exec(`
		UPDATE cartera.debts
		SET is_paid = TRUE, paid_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND is_paid = FALSE`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark debt paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
