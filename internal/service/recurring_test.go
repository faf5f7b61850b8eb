package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fercho159-aq/cartera/internal/models"
)

func addTemplate(t *testing.T, store *memStore, userID int64, recurrence string, next time.Time) *models.Transaction {
	t.Helper()
	tpl := &models.Transaction{
		UserID:           userID,
		Amount:           decimal.NewFromInt(50),
		Type:             models.TransactionExpense,
		Title:            "Subscription",
		Category:         "services",
		Date:             next.AddDate(0, 0, -30),
		IsRecurring:      true,
		RecurrencePeriod: recurrence,
		NextOccurrence:   &next,
	}
	if err := store.CreateTransaction(tpl); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	return tpl
}

func instancesOf(store *memStore, parentID int64) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range store.transactions {
		if tx.ParentID != nil && *tx.ParentID == parentID {
			out = append(out, tx)
		}
	}
	return out
}

func TestProcessRecurring_StaleTemplateFiresOnce(t *testing.T) {
	now := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	svc, store := newTestService(now)

	// Due 10 days ago; only one catch-up instance may be produced.
	stale := now.AddDate(0, 0, -10)
	tpl := addTemplate(t, store, 1, models.RecurrenceDaily, stale)

	if err := svc.ProcessRecurring(1); err != nil {
		t.Fatalf("ProcessRecurring: %v", err)
	}

	instances := instancesOf(store, tpl.ID)
	if len(instances) != 1 {
		t.Fatalf("expected exactly 1 materialized instance, got %d", len(instances))
	}

	inst := instances[0]
	if inst.IsRecurring {
		t.Error("materialized instance must not be recurring")
	}
	if !inst.Date.Equal(stale) {
		t.Errorf("instance should be dated at the stale occurrence %s, got %s", stale, inst.Date)
	}
	if !inst.Amount.Equal(tpl.Amount) || inst.Title != tpl.Title || inst.Category != tpl.Category {
		t.Error("instance must carry the template's amount, title and category")
	}

	// The pointer advances one day from its stale value, not to now.
	var updated *models.Transaction
	for _, tx := range store.transactions {
		if tx.ID == tpl.ID {
			updated = tx
		}
	}
	want := stale.AddDate(0, 0, 1)
	if updated.NextOccurrence == nil || !updated.NextOccurrence.Equal(want) {
		t.Errorf("expected next occurrence %s, got %v", want, updated.NextOccurrence)
	}
}

func TestProcessRecurring_AdvancesByPeriod(t *testing.T) {
	now := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	cases := []struct {
		recurrence string
		want       time.Time
	}{
		{models.RecurrenceDaily, due.AddDate(0, 0, 1)},
		{models.RecurrenceWeekly, due.AddDate(0, 0, 7)},
		{models.RecurrenceMonthly, due.AddDate(0, 1, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.recurrence, func(t *testing.T) {
			svc, store := newTestService(now)
			tpl := addTemplate(t, store, 1, tc.recurrence, due)

			if err := svc.ProcessRecurring(1); err != nil {
				t.Fatalf("ProcessRecurring: %v", err)
			}
			for _, tx := range store.transactions {
				if tx.ID == tpl.ID {
					if tx.NextOccurrence == nil || !tx.NextOccurrence.Equal(tc.want) {
						t.Errorf("expected next occurrence %s, got %v", tc.want, tx.NextOccurrence)
					}
				}
			}
		})
	}
}

func TestProcessRecurring_UnrecognizedPeriodStopsTemplate(t *testing.T) {
	now := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	svc, store := newTestService(now)
	tpl := addTemplate(t, store, 1, models.RecurrenceNone, now.AddDate(0, 0, -1))

	if err := svc.ProcessRecurring(1); err != nil {
		t.Fatalf("ProcessRecurring: %v", err)
	}

	if got := instancesOf(store, tpl.ID); len(got) != 1 {
		t.Fatalf("expected the due template to fire once, got %d instances", len(got))
	}
	for _, tx := range store.transactions {
		if tx.ID == tpl.ID && tx.NextOccurrence != nil {
			t.Errorf("expected recurrence to stop, next occurrence still %v", tx.NextOccurrence)
		}
	}
}

func TestProcessRecurring_NotDueDoesNothing(t *testing.T) {
	now := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	svc, store := newTestService(now)
	tpl := addTemplate(t, store, 1, models.RecurrenceDaily, now.AddDate(0, 0, 2))

	if err := svc.ProcessRecurring(1); err != nil {
		t.Fatalf("ProcessRecurring: %v", err)
	}
	if got := instancesOf(store, tpl.ID); len(got) != 0 {
		t.Errorf("expected no instances for a future template, got %d", len(got))
	}
}

func TestListTransactions_MaterializesDueTemplates(t *testing.T) {
	now := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	svc, store := newTestService(now)
	tpl := addTemplate(t, store, 1, models.RecurrenceMonthly, now.AddDate(0, 0, -1))

	txs, err := svc.ListTransactions(1, nil, nil, nil)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}

	var found bool
	for _, tx := range txs {
		if tx.ParentID != nil && *tx.ParentID == tpl.ID {
			found = true
		}
	}
	if !found {
		t.Error("expected the list read to materialize the due template first")
	}
}

func TestMaterializeAllDue_CoversEveryUser(t *testing.T) {
	now := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	svc, store := newTestService(now)
	tplA := addTemplate(t, store, 1, models.RecurrenceDaily, now.AddDate(0, 0, -1))
	tplB := addTemplate(t, store, 2, models.RecurrenceDaily, now.AddDate(0, 0, -1))

	svc.MaterializeAllDue()

	if got := instancesOf(store, tplA.ID); len(got) != 1 {
		t.Errorf("user 1: expected 1 instance, got %d", len(got))
	}
	if got := instancesOf(store, tplB.ID); len(got) != 1 {
		t.Errorf("user 2: expected 1 instance, got %d", len(got))
	}
}
