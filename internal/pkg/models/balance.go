package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance transaction types
const (
	BalanceTxDeposit   = "deposit"
	BalanceTxDeduction = "deduction"
)

// BalanceTransaction is an append-only ledger entry recording a single balance
// movement on a member account. Rows are created once and never mutated.
// Invariant: BalanceAfter = BalanceBefore + Amount for deposits and
// BalanceBefore - Amount for deductions.
type BalanceTransaction struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MemberID      uuid.UUID       `json:"member_id" db:"member_id"`
	Type          string          `json:"transaction_type" db:"transaction_type"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before" db:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after" db:"balance_after"`
	Notes         string          `json:"notes" db:"notes"`
	TransferRef   *uuid.UUID      `json:"transfer_ref,omitempty" db:"transfer_ref"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// MarshalJSON renders the amount and both balance snapshots with exactly two
// fractional digits.
func (t BalanceTransaction) MarshalJSON() ([]byte, error) {
	type alias BalanceTransaction
	return json.Marshal(struct {
		alias
		Amount        string `json:"amount"`
		BalanceBefore string `json:"balance_before"`
		BalanceAfter  string `json:"balance_after"`
	}{alias(t), t.Amount.StringFixed(2), t.BalanceBefore.StringFixed(2), t.BalanceAfter.StringFixed(2)})
}

// TransferResult carries the outcome of a completed fund transfer: both ledger
// legs plus fresh snapshots of the two parties.
type TransferResult struct {
	TransferRef          uuid.UUID          `json:"transfer_ref"`
	SenderTransaction    BalanceTransaction `json:"sender_transaction"`
	RecipientTransaction BalanceTransaction `json:"recipient_transaction"`
	Sender               Member             `json:"sender"`
	Recipient            Member             `json:"recipient"`
	Amount               decimal.Decimal    `json:"amount"`
	Notes                string             `json:"notes"`
	CompletedAt          time.Time          `json:"completed_at"`
}

// MarshalJSON renders the transferred amount with exactly two fractional
// digits. The nested members and ledger legs format their own money fields.
func (t TransferResult) MarshalJSON() ([]byte, error) {
	type alias TransferResult
	return json.Marshal(struct {
		alias
		Amount string `json:"amount"`
	}{alias(t), t.Amount.StringFixed(2)})
}
