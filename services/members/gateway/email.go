// Package gateway implements outbound notification delivery for the member
// service. Emails are dispatched on background goroutines so API responses
// never wait on SMTP, and delivery failures are logged rather than returned.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmlagera/coop-kiosk/internal/pkg/logger"
	"github.com/jmlagera/coop-kiosk/internal/pkg/mail"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/pkg/retry"
	"github.com/shopspring/decimal"
)

const retryStep = 2 * time.Second

// EmailGW delivers member notifications over SMTP
type EmailGW struct {
	sender      mail.Sender
	maxAttempts int
	timeout     time.Duration
	backoff     retry.BackoffPolicy
	wg          sync.WaitGroup
}

// NewEmailGW creates a new email gateway
func NewEmailGW(cfg models.SMTPConfig, sender mail.Sender) *EmailGW {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &EmailGW{
		sender:      sender,
		maxAttempts: maxAttempts,
		// Each attempt dials fresh; total budget is attempts*(timeout+backoff)
		timeout: timeout,
		backoff: retry.Linear(retryStep),
	}
}

// NotifyTransferOTP emails the verification code to the sender. It returns
// immediately; delivery happens on a background goroutine.
func (g *EmailGW) NotifyTransferOTP(sender *models.Member, recipient *models.Member, otp *models.TransferOTP, ttl time.Duration) {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", sender.FullName)
	b.WriteString("Fund Transfer Verification\n\n")
	fmt.Fprintf(&b, "Recipient: %s (%s)\n", recipient.FullName, recipient.RFIDCardNumber)
	fmt.Fprintf(&b, "Amount: %s\n", formatPeso(otp.Amount))
	if otp.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", otp.Notes)
	}
	fmt.Fprintf(&b, "\nYour verification code: %s\n\n", otp.OTPCode)
	fmt.Fprintf(&b, "Valid for %d minutes. Do not share this code.\n\n", int(ttl.Minutes()))
	b.WriteString("If you didn't request this, please contact support immediately.\n\n")
	b.WriteString("Best regards,\nCooperative Kiosk System")

	g.dispatch(mail.Message{
		To:      sender.Email,
		Subject: "Fund Transfer Verification Code",
		Body:    b.String(),
	})
}

// NotifyTransferCompleted emails both parties of a completed transfer. Members
// without an email address are skipped.
func (g *EmailGW) NotifyTransferCompleted(result *models.TransferResult) {
	dateStr := result.CompletedAt.Format("January 02, 2006 at 03:04 PM")

	if result.Sender.Email != "" {
		g.dispatch(mail.Message{
			To:      result.Sender.Email,
			Subject: "Fund Transfer Completed - Money Sent",
			Body:    senderCompletionBody(result, dateStr),
		})
	}
	if result.Recipient.Email != "" {
		g.dispatch(mail.Message{
			To:      result.Recipient.Email,
			Subject: "Fund Transfer Received - Money Received",
			Body:    recipientCompletionBody(result, dateStr),
		})
	}
}

func senderCompletionBody(result *models.TransferResult, dateStr string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", result.Sender.FullName)
	b.WriteString("Your fund transfer has been completed successfully.\n\n")
	b.WriteString("Transfer Details:\n")
	fmt.Fprintf(&b, "Amount Sent: %s\n", formatPeso(result.Amount))
	fmt.Fprintf(&b, "Recipient: %s\n", result.Recipient.FullName)
	fmt.Fprintf(&b, "Recipient RFID: %s\n", result.Recipient.RFIDCardNumber)
	if result.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", result.Notes)
	}
	fmt.Fprintf(&b, "Transaction Date: %s\n\n", dateStr)
	fmt.Fprintf(&b, "Your Account Balance: %s\n\n", formatPeso(result.Sender.Balance))
	b.WriteString("This transaction has been recorded in your account history.\n\n")
	b.WriteString("If you did not authorize this transfer, please contact support immediately.\n\n")
	b.WriteString("Best regards,\nCooperative Kiosk System")
	return b.String()
}

func recipientCompletionBody(result *models.TransferResult, dateStr string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", result.Recipient.FullName)
	b.WriteString("You have received a fund transfer.\n\n")
	b.WriteString("Transfer Details:\n")
	fmt.Fprintf(&b, "Amount Received: %s\n", formatPeso(result.Amount))
	fmt.Fprintf(&b, "Sender: %s\n", result.Sender.FullName)
	fmt.Fprintf(&b, "Sender RFID: %s\n", result.Sender.RFIDCardNumber)
	if result.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", result.Notes)
	}
	fmt.Fprintf(&b, "Transaction Date: %s\n\n", dateStr)
	fmt.Fprintf(&b, "Your Account Balance: %s\n\n", formatPeso(result.Recipient.Balance))
	b.WriteString("The funds have been added to your account and are available for use.\n\n")
	b.WriteString("Best regards,\nCooperative Kiosk System")
	return b.String()
}

// dispatch sends a message on a background goroutine with bounded retries.
// Failures never propagate past this gateway.
func (g *EmailGW) dispatch(msg mail.Message) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		err := retry.Attempt(context.Background(), g.maxAttempts, g.backoff, func(ctx context.Context) error {
			attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
			defer cancel()

			if err := g.sender.Send(attemptCtx, msg); err != nil {
				logger.Warn("email send attempt failed",
					logger.String("to", msg.To),
					logger.String("subject", msg.Subject),
					logger.Err(err))
				return err
			}
			return nil
		})
		if err != nil {
			logger.Error("failed to send email",
				logger.String("to", msg.To),
				logger.String("subject", msg.Subject),
				logger.Err(err))
			return
		}

		logger.Info("email sent",
			logger.String("to", msg.To),
			logger.String("subject", msg.Subject))
	}()
}

// formatPeso renders an amount as ₱1,234.56
func formatPeso(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "₱" + b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
