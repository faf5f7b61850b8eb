package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/fercho159-aq/cartera/internal/config"
	"github.com/fercho159-aq/cartera/internal/models"
)

// EmailNotifier sends user notices over SMTP.
type EmailNotifier struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewEmailNotifier initializes the notifier. Returns nil when no SMTP host is
// configured, which disables notifications.
func NewEmailNotifier(cfg *config.Config, logger *logrus.Logger) *EmailNotifier {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// RecurringPosted notifies a user that a recurring transaction was posted to
// their ledger.
func (n *EmailNotifier) RecurringPosted(user *models.User, tx *models.Transaction) error {
	e := email.NewEmail()
	e.From = n.cfg.SMTPFrom
	e.To = []string{user.Email}
	e.Subject = fmt.Sprintf("Recurring %s posted: %s", tx.Type, tx.Title)

	body := fmt.Sprintf(
		"Hello %s,\n\nA recurring %s was posted to your ledger.\n\nTitle: %s\nCategory: %s\nAmount: %s\nDate: %s\n\nBest regards,\nCartera",
		user.Username, tx.Type, tx.Title, tx.Category, tx.Amount, tx.Date.Format("2006-01-02"),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUsername, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		n.logger.Errorf("Failed to send notification to %s: %v", user.Email, err)
		return fmt.Errorf("failed to send notification: %w", err)
	}

	n.logger.Infof("Email sent to %s: %s", user.Email, e.Subject)
	return nil
}
