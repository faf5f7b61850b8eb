package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fercho159-aq/cartera/internal/config"
	"github.com/fercho159-aq/cartera/internal/models"
)

// Store is the persistence interface the service depends on. The Postgres
// implementation lives in internal/repository; tests supply an in-memory one.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)

	CreateAccount(account *models.Account) error
	AccountForUser(accountID, userID int64) (*models.Account, error)

	CreateTransaction(tx *models.Transaction) error
	DeleteTransaction(id, userID int64) error
	ListTransactions(userID int64, accountID *int64, from, to *time.Time) ([]models.Transaction, error)
	DueRecurringTemplates(userID int64, cutoff time.Time) ([]models.Transaction, error)
	SetNextOccurrence(id int64, next *time.Time) error
	UserIDsWithDueTemplates(cutoff time.Time) ([]int64, error)
	ExpenseWindow(userID int64, accountID *int64, from, to time.Time) (decimal.Decimal, int, error)
	MonthTotals(userID int64, accountID *int64, year int, month time.Month) (decimal.Decimal, decimal.Decimal, error)

	CreateIncomeSource(src *models.IncomeSource) error
	UpdateIncomeSource(src *models.IncomeSource) error
	IncomeSourceByID(id, userID int64) (*models.IncomeSource, error)
	ListIncomeSources(userID int64) ([]models.IncomeSource, error)
	ForecastIncomeSources(userID int64, accountID *int64) ([]models.IncomeSource, error)
	SetIncomeSourceAverage(id int64, avg decimal.Decimal) error
	CreateCommission(rec *models.CommissionRecord) error
	CommissionsSince(incomeSourceID int64, since time.Time) ([]models.CommissionRecord, error)

	CreateDebt(debt *models.Debt) error
	DebtByID(id, userID int64) (*models.Debt, error)
	ListDebts(userID int64) ([]models.Debt, error)
	MarkDebtPaid(id, userID int64) error

	CreateUserCategory(userID int64, cat *models.Category) error
	UserCategories(userID int64) ([]models.Category, error)
}

// Notifier delivers out-of-band notices to users. Delivery failures are
// logged, never surfaced to the caller.
type Notifier interface {
	RecurringPosted(user *models.User, tx *models.Transaction) error
}

// Service handles business logic
type Service struct {
	store    Store
	log      *logrus.Logger
	config   *config.Config
	notifier Notifier

	now func() time.Time
}

// NewService initializes a new service. notifier may be nil.
func NewService(store Store, log *logrus.Logger, cfg *config.Config, notifier Notifier) *Service {
	return &Service{
		store:    store,
		log:      log,
		config:   cfg,
		notifier: notifier,
		now:      time.Now,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", models.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", models.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.ErrUnauthorized
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CreateAccount creates a shared ledger owned by the caller.
func (s *Service) CreateAccount(userID int64, name string) (*models.Account, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", models.ErrValidation)
	}
	account := &models.Account{OwnerID: userID, Name: name}
	if err := s.store.CreateAccount(account); err != nil {
		return nil, err
	}
	s.log.Infof("Account %d created by user %d", account.ID, userID)
	return account, nil
}

// checkLedger validates that the caller can use the requested ledger scope.
// A nil accountID is the personal ledger and always accessible.
func (s *Service) checkLedger(userID int64, accountID *int64) error {
	if accountID == nil {
		return nil
	}
	if _, err := s.store.AccountForUser(*accountID, userID); err != nil {
		return err
	}
	return nil
}
