package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Member roles
const (
	RoleMember = "member"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// Member represents a cooperative member account
type Member struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	Username          string          `json:"username,omitempty" db:"username"`
	FullName          string          `json:"full_name" db:"full_name"`
	RFIDCardNumber    string          `json:"rfid_card_number" db:"rfid_card_number"`
	Email             string          `json:"email,omitempty" db:"email"`
	PINHash           string          `json:"-" db:"pin_hash"`
	Balance           decimal.Decimal `json:"balance" db:"balance"`
	Role              string          `json:"role" db:"role"`
	IsActive          bool            `json:"is_active" db:"is_active"`
	LastTransactionAt *time.Time      `json:"last_transaction_at,omitempty" db:"last_transaction_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// MarshalJSON renders the balance with exactly two fractional digits, the
// format mobile clients display verbatim.
func (m Member) MarshalJSON() ([]byte, error) {
	type alias Member
	return json.Marshal(struct {
		alias
		Balance string `json:"balance"`
	}{alias(m), m.Balance.StringFixed(2)})
}

// PublicProfile returns the subset of member fields safe to expose to other
// members, e.g. in recipient lookups.
func (m *Member) PublicProfile() *MemberProfile {
	return &MemberProfile{
		ID:             m.ID,
		FullName:       m.FullName,
		RFIDCardNumber: m.RFIDCardNumber,
	}
}

// MemberProfile is the public view of a member used for recipient lookups
type MemberProfile struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	RFIDCardNumber string    `json:"rfid_card_number"`
}

// LoginRequest represents a mobile login request. Members with a username log
// in with username + PIN; plain members without one use their RFID card.
type LoginRequest struct {
	Username string `json:"username"`
	RFID     string `json:"rfid"`
	PIN      string `json:"pin"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Member    *Member `json:"member"`
	Token     string  `json:"token"`
	SessionID string  `json:"session_id"`
	ExpiresAt int64   `json:"expires_at"`
	Message   string  `json:"message"`
}
