package models

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferOTP is a short-lived verification code binding a requester, a
// recipient and an amount. Lifecycle: pending until consumed on successful
// verification, superseded by a newer request, or implicitly expired.
type TransferOTP struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MemberID      uuid.UUID       `json:"member_id" db:"member_id"`
	RecipientRFID string          `json:"recipient_rfid" db:"recipient_rfid"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Notes         string          `json:"notes" db:"notes"`
	OTPCode       string          `json:"-" db:"otp_code"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at" db:"expires_at"`
	IsUsed        bool            `json:"is_used" db:"is_used"`
	IsSuperseded  bool            `json:"is_superseded" db:"is_superseded"`
	VerifiedAt    *time.Time      `json:"verified_at,omitempty" db:"verified_at"`
}

// MarshalJSON renders the amount with exactly two fractional digits
func (o TransferOTP) MarshalJSON() ([]byte, error) {
	type alias TransferOTP
	return json.Marshal(struct {
		alias
		Amount string `json:"amount"`
	}{alias(o), o.Amount.StringFixed(2)})
}

// IsExpired reports whether the OTP is past its expiry at the given instant.
// Expiry is evaluated lazily; expired rows are never purged mid-flight.
func (o *TransferOTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// GenerateOTPCode returns a random code of exactly 6 ASCII digits
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// FundTransferRequest is the payload for requesting a transfer OTP
type FundTransferRequest struct {
	RecipientRFID string          `json:"recipient_rfid"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes"`
}

// VerifyOTPRequest is the payload for verifying a transfer OTP
type VerifyOTPRequest struct {
	OTPCode string `json:"otp_code"`
}

// OTPIssued is returned after an OTP has been created and queued for delivery
type OTPIssued struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"` // seconds
}
