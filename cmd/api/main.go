package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/fercho159-aq/cartera/internal/config"
	"github.com/fercho159-aq/cartera/internal/handler"
	"github.com/fercho159-aq/cartera/internal/middleware"
	"github.com/fercho159-aq/cartera/internal/notify"
	"github.com/fercho159-aq/cartera/internal/repository"
	"github.com/fercho159-aq/cartera/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var notifier service.Notifier
	if n := notify.NewEmailNotifier(cfg, logger); n != nil {
		notifier = n
	}
	svc := service.NewService(repo, logger, cfg, notifier)
	h := handler.NewHandler(svc, logger)

	// Scheduled materialization of due recurring templates. The lazy path on
	// transaction reads stays in place; this just keeps dormant ledgers current.
	if cfg.MaterializeCron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.MaterializeCron, svc.MaterializeAllDue); err != nil {
			logger.Fatalf("Invalid MATERIALIZE_CRON: %v", err)
		}
		c.Start()
		defer c.Stop()
		logger.Infof("Scheduled materialization enabled: %s", cfg.MaterializeCron)
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/income-sources", h.CreateIncomeSource).Methods("POST")
	authRouter.HandleFunc("/income-sources", h.ListIncomeSources).Methods("GET")
	authRouter.HandleFunc("/income-sources/{id}", h.UpdateIncomeSource).Methods("PUT")
	authRouter.HandleFunc("/income-sources/{id}/commissions", h.PostCommission).Methods("POST")
	authRouter.HandleFunc("/debts", h.CreateDebt).Methods("POST")
	authRouter.HandleFunc("/debts", h.ListDebts).Methods("GET")
	authRouter.HandleFunc("/debts/{id}/paid", h.MarkDebtPaid).Methods("POST")
	authRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	authRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	authRouter.HandleFunc("/forecast", h.Forecast).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
