package service

import (
	"fmt"

	"github.com/fercho159-aq/cartera/internal/models"
)

// defaultCategories is the catalog every user starts with.
var defaultCategories = []models.Category{
	{ID: "salary", Name: "Salary", Icon: "💼", Type: models.TransactionIncome},
	{ID: "commission", Name: "Commission", Icon: "📈", Type: models.TransactionIncome},
	{ID: "other-income", Name: "Other income", Icon: "💰", Type: models.TransactionIncome},
	{ID: "food", Name: "Food", Icon: "🍔", Type: models.TransactionExpense},
	{ID: "groceries", Name: "Groceries", Icon: "🛒", Type: models.TransactionExpense},
	{ID: "transport", Name: "Transport", Icon: "🚌", Type: models.TransactionExpense},
	{ID: "housing", Name: "Housing", Icon: "🏠", Type: models.TransactionExpense},
	{ID: "services", Name: "Services", Icon: "💡", Type: models.TransactionExpense},
	{ID: "health", Name: "Health", Icon: "💊", Type: models.TransactionExpense},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Type: models.TransactionExpense},
	{ID: "other-expense", Name: "Other", Icon: "📦", Type: models.TransactionExpense},
}

// MergeCategories unions the default catalog with user-defined entries.
// Defaults always win on id collisions; user entries coexist alongside them.
func MergeCategories(defaults, custom []models.Category) []models.Category {
	taken := make(map[string]bool, len(defaults))
	out := make([]models.Category, 0, len(defaults)+len(custom))
	for _, cat := range defaults {
		taken[cat.ID] = true
		out = append(out, cat)
	}
	for _, cat := range custom {
		if taken[cat.ID] {
			continue
		}
		taken[cat.ID] = true
		out = append(out, cat)
	}
	return out
}

// Categories returns the caller's full category catalog.
func (s *Service) Categories(userID int64) ([]models.Category, error) {
	custom, err := s.store.UserCategories(userID)
	if err != nil {
		return nil, err
	}
	return MergeCategories(defaultCategories, custom), nil
}

// CreateCategory adds a user-defined category to the caller's catalog.
func (s *Service) CreateCategory(userID int64, cat *models.Category) (*models.Category, error) {
	if cat.ID == "" || cat.Name == "" {
		return nil, fmt.Errorf("%w: category id and name are required", models.ErrValidation)
	}
	if cat.Type != models.TransactionIncome && cat.Type != models.TransactionExpense {
		return nil, fmt.Errorf("%w: category type must be income or expense", models.ErrValidation)
	}
	if err := s.store.CreateUserCategory(userID, cat); err != nil {
		return nil, err
	}
	s.log.Infof("Category %s created for user %d", cat.ID, userID)
	return cat, nil
}
