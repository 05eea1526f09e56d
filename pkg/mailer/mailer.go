package mailer

import (
	"roombook/pkg/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers plain-text mail. The SMTP implementation honours the
// config test mode, which reroutes every message to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	recipient := to
	if m.cfg.TestMode && m.cfg.TestRecipient != "" {
		recipient = m.cfg.TestRecipient
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return d.DialAndSend(msg)
}
