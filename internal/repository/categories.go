package repository

import (
	"fmt"

	"github.com/fercho159-aq/cartera/internal/models"
)

// CreateUserCategory inserts a user-defined category.
func (r *Repository) CreateUserCategory(userID int64, cat *models.Category) error {
	query := `
		INSERT INTO cartera.user_categories (user_id, id, name, icon, type)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(query, userID, cat.ID, cat.Name, cat.Icon, cat.Type); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	cat.Custom = true
	return nil
}

// UserCategories returns the user's custom category entries.
func (r *Repository) UserCategories(userID int64) ([]models.Category, error) {
	rows, err := r.db.Query(`
		SELECT id, name, icon, type
		FROM cartera.user_categories
		WHERE user_id = $1
		ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Type); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Custom = true
		out = append(out, cat)
	}
	return out, rows.Err()
}
