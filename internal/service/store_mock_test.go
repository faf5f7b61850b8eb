package service

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fercho159-aq/cartera/internal/config"
	"github.com/fercho159-aq/cartera/internal/models"
)

// memStore is an in-memory Store for tests. Every test constructs a fresh one.
type memStore struct {
	users        map[int64]*models.User
	accounts     map[int64]*models.Account
	transactions []*models.Transaction
	sources      map[int64]*models.IncomeSource
	commissions  []*models.CommissionRecord
	debts        map[int64]*models.Debt
	categories   map[int64][]models.Category

	nextID int64
	now    time.Time
}

func newMemStore(now time.Time) *memStore {
	return &memStore{
		users:      map[int64]*models.User{},
		accounts:   map[int64]*models.Account{},
		sources:    map[int64]*models.IncomeSource{},
		debts:      map[int64]*models.Debt{},
		categories: map[int64][]models.Category{},
		now:        now,
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func inLedger(userID int64, accountID *int64, txUserID int64, txAccountID *int64) bool {
	if accountID == nil {
		return txUserID == userID && txAccountID == nil
	}
	return txAccountID != nil && *txAccountID == *accountID
}

func (m *memStore) CreateUser(user *models.User) error {
	user.ID = m.id()
	user.CreatedAt = m.now
	m.users[user.ID] = user
	return nil
}

func (m *memStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) FindUserByID(id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func (m *memStore) CreateAccount(account *models.Account) error {
	account.ID = m.id()
	m.accounts[account.ID] = account
	return nil
}

func (m *memStore) AccountForUser(accountID, userID int64) (*models.Account, error) {
	if a, ok := m.accounts[accountID]; ok && a.OwnerID == userID {
		return a, nil
	}
	return nil, models.ErrNotFound
}

func (m *memStore) CreateTransaction(tx *models.Transaction) error {
	tx.ID = m.id()
	tx.CreatedAt = m.now
	tx.UpdatedAt = m.now
	m.transactions = append(m.transactions, tx)
	return nil
}

func (m *memStore) DeleteTransaction(id, userID int64) error {
	for i, tx := range m.transactions {
		if tx.ID == id && tx.UserID == userID {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *memStore) ListTransactions(userID int64, accountID *int64, from, to *time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range m.transactions {
		if !inLedger(userID, accountID, tx.UserID, tx.AccountID) {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && !tx.Date.Before(*to) {
			continue
		}
		out = append(out, *tx)
	}
	return out, nil
}

func (m *memStore) DueRecurringTemplates(userID int64, cutoff time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID && tx.IsRecurring && tx.NextOccurrence != nil && !tx.NextOccurrence.After(cutoff) {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (m *memStore) SetNextOccurrence(id int64, next *time.Time) error {
	for _, tx := range m.transactions {
		if tx.ID == id {
			tx.NextOccurrence = next
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *memStore) UserIDsWithDueTemplates(cutoff time.Time) ([]int64, error) {
	seen := map[int64]bool{}
	var out []int64
	for _, tx := range m.transactions {
		if tx.IsRecurring && tx.NextOccurrence != nil && !tx.NextOccurrence.After(cutoff) && !seen[tx.UserID] {
			seen[tx.UserID] = true
			out = append(out, tx.UserID)
		}
	}
	return out, nil
}

func (m *memStore) ExpenseWindow(userID int64, accountID *int64, from, to time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	months := map[string]bool{}
	for _, tx := range m.transactions {
		if !inLedger(userID, accountID, tx.UserID, tx.AccountID) || tx.Type != models.TransactionExpense {
			continue
		}
		if tx.Date.Before(from) || !tx.Date.Before(to) {
			continue
		}
		total = total.Add(tx.Amount)
		months[tx.Date.Format("2006-01")] = true
	}
	return total, len(months), nil
}

func (m *memStore) MonthTotals(userID int64, accountID *int64, year int, month time.Month) (decimal.Decimal, decimal.Decimal, error) {
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range m.transactions {
		if !inLedger(userID, accountID, tx.UserID, tx.AccountID) {
			continue
		}
		if tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		if tx.Type == models.TransactionIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense, nil
}

func (m *memStore) CreateIncomeSource(src *models.IncomeSource) error {
	src.ID = m.id()
	src.CreatedAt = m.now
	src.UpdatedAt = m.now
	m.sources[src.ID] = src
	return nil
}

func (m *memStore) UpdateIncomeSource(src *models.IncomeSource) error {
	existing, ok := m.sources[src.ID]
	if !ok || existing.UserID != src.UserID {
		return models.ErrNotFound
	}
	src.AverageLast3Months = existing.AverageLast3Months
	m.sources[src.ID] = src
	return nil
}

func (m *memStore) IncomeSourceByID(id, userID int64) (*models.IncomeSource, error) {
	if src, ok := m.sources[id]; ok && src.UserID == userID {
		out := *src
		return &out, nil
	}
	return nil, models.ErrNotFound
}

func (m *memStore) ListIncomeSources(userID int64) ([]models.IncomeSource, error) {
	var out []models.IncomeSource
	for _, src := range m.sources {
		if src.UserID == userID {
			out = append(out, *src)
		}
	}
	return out, nil
}

func (m *memStore) ForecastIncomeSources(userID int64, accountID *int64) ([]models.IncomeSource, error) {
	var out []models.IncomeSource
	for _, src := range m.sources {
		if !src.IsActive || !src.IncludeInForecast {
			continue
		}
		if inLedger(userID, accountID, src.UserID, src.AccountID) {
			out = append(out, *src)
		}
	}
	return out, nil
}

func (m *memStore) SetIncomeSourceAverage(id int64, avg decimal.Decimal) error {
	src, ok := m.sources[id]
	if !ok {
		return models.ErrNotFound
	}
	v := avg
	src.AverageLast3Months = &v
	return nil
}

func (m *memStore) CreateCommission(rec *models.CommissionRecord) error {
	rec.ID = m.id()
	rec.CreatedAt = m.now
	m.commissions = append(m.commissions, rec)
	return nil
}

func (m *memStore) CommissionsSince(incomeSourceID int64, since time.Time) ([]models.CommissionRecord, error) {
	var out []models.CommissionRecord
	for _, rec := range m.commissions {
		if rec.IncomeSourceID == incomeSourceID && !rec.CreatedAt.Before(since) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore) CreateDebt(debt *models.Debt) error {
	debt.ID = m.id()
	debt.CreatedAt = m.now
	m.debts[debt.ID] = debt
	return nil
}

func (m *memStore) DebtByID(id, userID int64) (*models.Debt, error) {
	if d, ok := m.debts[id]; ok && d.UserID == userID {
		return d, nil
	}
	return nil, models.ErrNotFound
}

func (m *memStore) ListDebts(userID int64) ([]models.Debt, error) {
	var out []models.Debt
	for _, d := range m.debts {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memStore) MarkDebtPaid(id, userID int64) error {
	d, ok := m.debts[id]
	if !ok || d.UserID != userID || d.IsPaid {
		return models.ErrNotFound
	}
	d.IsPaid = true
	paidAt := m.now
	d.PaidAt = &paidAt
	return nil
}

func (m *memStore) CreateUserCategory(userID int64, cat *models.Category) error {
	cat.Custom = true
	m.categories[userID] = append(m.categories[userID], *cat)
	return nil
}

func (m *memStore) UserCategories(userID int64) ([]models.Category, error) {
	return m.categories[userID], nil
}

// newTestService wires a service around a fresh memStore with a fixed clock.
func newTestService(now time.Time) (*Service, *memStore) {
	store := newMemStore(now)
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(store, log, &config.Config{JWTSecret: "test"}, nil)
	svc.now = func() time.Time { return now }
	return svc, store
}
