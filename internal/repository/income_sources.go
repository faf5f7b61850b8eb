package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/models"
)

const incomeSourceColumns = `
	id, user_id, account_id, name, type, base_amount, frequency, pay_days,
	min_expected, max_expected, average_last_3_months,
	is_active, include_in_forecast, created_at, updated_at`

// CreateIncomeSource inserts an income source and fills in its id and timestamps.
func (r *Repository) CreateIncomeSource(src *models.IncomeSource) error {
	query := `
		INSERT INTO cartera.income_sources
			(user_id, account_id, name, type, base_amount, frequency, pay_days,
			 min_expected, max_expected, is_active, include_in_forecast,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			 CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		src.UserID, src.AccountID, src.Name, src.Type, src.BaseAmount, src.Frequency,
		pq.Array(src.PayDays), nullDecimal(src.MinExpected), nullDecimal(src.MaxExpected),
		src.IsActive, src.IncludeInForecast).
		Scan(&src.ID, &src.CreatedAt, &src.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income source: %w", err)
	}
	return nil
}

// UpdateIncomeSource persists the editable fields of an income source.
// The stored 3-month average is owned by the averaging service and is not
// touched here.
func (r *Repository) UpdateIncomeSource(src *models.IncomeSource) error {
	query := `
		UPDATE cartera.income_sources
		SET name = $3, type = $4, base_amount = $5, frequency = $6, pay_days = $7,
		    min_expected = $8, max_expected = $9, is_active = $10,
		    include_in_forecast = $11, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(query,
		src.ID, src.UserID, src.Name, src.Type, src.BaseAmount, src.Frequency,
		pq.Array(src.PayDays), nullDecimal(src.MinExpected), nullDecimal(src.MaxExpected),
		src.IsActive, src.IncludeInForecast)
	if err != nil {
		return fmt.Errorf("failed to update income source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// IncomeSourceByID retrieves an income source owned by the user.
func (r *Repository) IncomeSourceByID(id, userID int64) (*models.IncomeSource, error) {
	query := `SELECT` + incomeSourceColumns + `
		FROM cartera.income_sources
		WHERE id = $1 AND user_id = $2`
	src, err := scanIncomeSource(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find income source: %w", err)
	}
	return src, nil
}

// ListIncomeSources returns every income source the user has configured,
// active or not.
func (r *Repository) ListIncomeSources(userID int64) ([]models.IncomeSource, error) {
	query := `SELECT` + incomeSourceColumns + `
		FROM cartera.income_sources
		WHERE user_id = $1
		ORDER BY name ASC`
	return r.queryIncomeSources(query, userID)
}

// ForecastIncomeSources returns the active, forecast-included sources in the
// given ledger scope.
func (r *Repository) ForecastIncomeSources(userID int64, accountID *int64) ([]models.IncomeSource, error) {
	clause, args, _ := ledgerClause(userID, accountID, 1)
	query := `SELECT` + incomeSourceColumns + `
		FROM cartera.income_sources
		WHERE ` + clause + ` AND is_active = TRUE AND include_in_forecast = TRUE
		ORDER BY id ASC`
	return r.queryIncomeSources(query, args...)
}

// SetIncomeSourceAverage overwrites the stored trailing 3-month average.
func (r *Repository) SetIncomeSourceAverage(id int64, avg decimal.Decimal) error {
	_, err := r.db.Exec(`
		UPDATE cartera.income_sources
		SET average_last_3_months = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`, id, avg)
	if err != nil {
		return fmt.Errorf("failed to set income source average: %w", err)
	}
	return nil
}

// CreateCommission inserts a commission record for a variable income source.
func (r *Repository) CreateCommission(rec *models.CommissionRecord) error {
	query := `
		INSERT INTO cartera.commission_records
			(income_source_id, user_id, amount, period_month, period_year,
			 status, confirmed_at, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query,
		rec.IncomeSourceID, rec.UserID, rec.Amount, rec.PeriodMonth, rec.PeriodYear,
		rec.Status, rec.ConfirmedAt, rec.PaidAt).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create commission record: %w", err)
	}
	return nil
}

// CommissionsSince returns a source's commission records created at or after
// the given instant. Selection is by creation timestamp, not period fields.
func (r *Repository) CommissionsSince(incomeSourceID int64, since time.Time) ([]models.CommissionRecord, error) {
	query := `
		SELECT id, income_source_id, user_id, amount, period_month, period_year,
		       status, confirmed_at, paid_at, created_at
		FROM cartera.commission_records
		WHERE income_source_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`
	rows, err := r.db.Query(query, incomeSourceID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission records: %w", err)
	}
	defer rows.Close()

	var out []models.CommissionRecord
	for rows.Next() {
		var rec models.CommissionRecord
		err := rows.Scan(&rec.ID, &rec.IncomeSourceID, &rec.UserID, &rec.Amount,
			&rec.PeriodMonth, &rec.PeriodYear, &rec.Status,
			&rec.ConfirmedAt, &rec.PaidAt, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) queryIncomeSources(query string, args ...interface{}) ([]models.IncomeSource, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list income sources: %w", err)
	}
	defer rows.Close()

	var out []models.IncomeSource
	for rows.Next() {
		src, err := scanIncomeSource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income source: %w", err)
		}
		out = append(out, *src)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIncomeSource(row rowScanner) (*models.IncomeSource, error) {
	src := &models.IncomeSource{}
	var minExp, maxExp, avg decimal.NullDecimal
	err := row.Scan(&src.ID, &src.UserID, &src.AccountID, &src.Name, &src.Type,
		&src.BaseAmount, &src.Frequency, pq.Array(&src.PayDays),
		&minExp, &maxExp, &avg, &src.IsActive, &src.IncludeInForecast,
		&src.CreatedAt, &src.UpdatedAt)
	if err != nil {
		return nil, err
	}
	src.MinExpected = fromNullDecimal(minExp)
	src.MaxExpected = fromNullDecimal(maxExp)
	src.AverageLast3Months = fromNullDecimal(avg)
	return src, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
