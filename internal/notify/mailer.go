package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer delivers alert email to attending physicians.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SMTPMailer sends through a plain relay.
type SMTPMailer struct {
	addr   string
	logger *zap.Logger
}

func NewSMTPMailer(addr string, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{addr: addr, logger: logger}
}

func (m *SMTPMailer) Send(_ context.Context, from, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", from, to, subject, body)
	if err := smtp.SendMail(m.addr, nil, from, []string{to}, []byte(msg)); err != nil {
		return err
	}
	m.logger.Debug("alert email sent", zap.String("to", to))
	return nil
}

// NopMailer is used when no relay is configured. The response body
// still reports the mail, the send is just skipped.
type NopMailer struct{}

func (NopMailer) Send(context.Context, string, string, string, string) error { return nil }
