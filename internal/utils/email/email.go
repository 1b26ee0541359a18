package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/kitucode/banking-service/internal/config"
	"github.com/kitucode/banking-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender delivers back-office notifications to the operations mailbox
// via SMTP.
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender, or nil when SMTP or the
// operations mailbox is not configured.
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	if cfg.SMTPHost == "" || cfg.OpsEmail == "" {
		return nil
	}
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// AccountOpened notifies the operations mailbox about a newly opened
// account.
func (s *Sender) AccountOpened(account *models.Account) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.OpsEmail}
	e.Subject = "Account Opened"

	body := fmt.Sprintf(
		"A new account has been opened.\n\n"+
			"Account id: %d\n"+
			"IBAN: %s\n"+
			"BIC/SWIFT: %s\n"+
			"Customer id: %d\n"+
			"Opened on: %s\n",
		account.AccountID, account.IBAN, account.BicSwift, account.CustomerID, account.CreatedOn,
	)
	e.Text = []byte(body)

	return s.send(e)
}

// CardIssued notifies the operations mailbox about a newly issued card.
// The card passed in must already be masked.
func (s *Sender) CardIssued(card *models.Card) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.OpsEmail}
	e.Subject = "Card Issued"

	body := fmt.Sprintf(
		"A new card has been issued.\n\n"+
			"Card id: %d\n"+
			"Alias: %s\n"+
			"Type: %s\n"+
			"PAN: %s\n"+
			"Account id: %d\n"+
			"Issued on: %s\n",
		card.CardID, card.CardAlias, card.CardType, card.PAN, card.AccountID, card.CreatedOn,
	)
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", s.cfg.OpsEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.OpsEmail, e.Subject)
	return nil
}
