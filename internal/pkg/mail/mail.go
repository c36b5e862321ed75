// Package mail wraps the SMTP transport. Each Send dials a fresh connection
// with a bounded timeout and closes it when the attempt finishes, so retries
// never reuse a half-broken connection.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	gomail "github.com/wneessen/go-mail"
)

// Message is a plain-text email to deliver
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers messages over SMTP
type SMTPSender struct {
	cfg models.SMTPConfig
}

// NewSMTPSender creates a sender from SMTP configuration
func NewSMTPSender(cfg models.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send dials the SMTP server, delivers the message and closes the connection.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTimeout(time.Duration(s.cfg.Timeout) * time.Second),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	// DialAndSend closes the connection regardless of outcome
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
