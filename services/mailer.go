package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/config"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches a plain-text email
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewMailer returns an SMTP mailer, or a LogMailer when no SMTP host is configured
func NewMailer(cfg config.Mail) Mailer {
	if cfg.Host == "" {
		logrus.Warn("SMTP_HOST not set, confirmation emails will only be logged")
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer sends email through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTPMailer from the mail settings
func NewSMTPMailer(cfg config.Mail) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers one message synchronously
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. For development only.
type LogMailer struct{}

// Send logs the message
func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info(body)
	return nil
}
