package service

import (
	"testing"
	"time"

	"github.com/fercho159-aq/cartera/internal/models"
)

func TestMergeCategories_DefaultsWinOnCollision(t *testing.T) {
	defaults := []models.Category{
		{ID: "food", Name: "Food", Icon: "🍔", Type: models.TransactionExpense},
	}
	custom := []models.Category{
		{ID: "food", Name: "My Food", Icon: "🍕", Type: models.TransactionExpense, Custom: true},
		{ID: "pets", Name: "Pets", Icon: "🐶", Type: models.TransactionExpense, Custom: true},
	}

	merged := MergeCategories(defaults, custom)
	if len(merged) != 2 {
		t.Fatalf("expected 2 categories after merge, got %d", len(merged))
	}

	byID := map[string]models.Category{}
	for _, cat := range merged {
		byID[cat.ID] = cat
	}
	if byID["food"].Name != "Food" {
		t.Errorf("default category must win on id collision, got %q", byID["food"].Name)
	}
	if _, ok := byID["pets"]; !ok {
		t.Error("user-defined category missing from merge")
	}
}

func TestCategories_IncludesUserEntries(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	created, err := svc.CreateCategory(1, &models.Category{
		ID: "pets", Name: "Pets", Icon: "🐶", Type: models.TransactionExpense,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if !created.Custom {
		t.Error("user categories must be flagged custom")
	}

	cats, err := svc.Categories(1)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	var found bool
	for _, cat := range cats {
		if cat.ID == "pets" {
			found = true
		}
	}
	if !found {
		t.Error("expected user category in merged catalog")
	}
	if len(cats) <= len(defaultCategories) {
		t.Errorf("expected catalog larger than the %d defaults, got %d", len(defaultCategories), len(cats))
	}
}
