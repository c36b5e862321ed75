package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ExecuteTransfer performs the atomic balance mutation for a verified OTP:
// both member rows are locked, both balances updated, both ledger legs
// written and the OTP consumed inside one database transaction. If anything
// fails nothing persists and the OTP remains pending.
func (r *MemberRepo) ExecuteTransfer(ctx context.Context, otp *models.TransferOTP, recipient *models.Member) (*models.TransferResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	// Lock both member rows in deterministic id order to avoid deadlocks
	// between concurrent transfers involving the same pair.
	firstID, secondID := otp.MemberID, recipient.ID
	if secondID.String() < firstID.String() {
		firstID, secondID = secondID, firstID
	}

	var sender, rcpt models.Member
	for _, id := range []uuid.UUID{firstID, secondID} {
		locked, err := lockMember(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if id == otp.MemberID {
			sender = *locked
		} else {
			rcpt = *locked
		}
	}

	amount := otp.Amount
	if sender.Balance.LessThan(amount) {
		return nil, apperr.InsufficientBalance("Insufficient balance")
	}

	// Consume the OTP first; the guard on is_used makes a concurrent second
	// verification of the same code lose the race and roll back.
	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE transfer_otps
		SET is_used = true, verified_at = $1
		WHERE id = $2 AND is_used = false AND is_superseded = false
	`, now, otp.ID)
	if err != nil {
		return nil, apperr.Internal("failed to consume OTP", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, apperr.NotFound("Invalid or expired OTP code")
	}

	senderBefore := sender.Balance
	senderAfter := senderBefore.Sub(amount)
	rcptBefore := rcpt.Balance
	rcptAfter := rcptBefore.Add(amount)

	if err := updateBalance(ctx, tx, sender.ID, senderAfter, now); err != nil {
		return nil, err
	}
	if err := updateBalance(ctx, tx, rcpt.ID, rcptAfter, now); err != nil {
		return nil, err
	}

	transferRef := uuid.New()

	senderNotes := fmt.Sprintf("Fund transfer to %s (%s)", rcpt.FullName, rcpt.RFIDCardNumber)
	rcptNotes := fmt.Sprintf("Fund transfer from %s (%s)", sender.FullName, sender.RFIDCardNumber)
	if otp.Notes != "" {
		senderNotes += " - " + otp.Notes
		rcptNotes += " - " + otp.Notes
	}

	senderTx := models.BalanceTransaction{
		ID:            uuid.New(),
		MemberID:      sender.ID,
		Type:          models.BalanceTxDeduction,
		Amount:        amount,
		BalanceBefore: senderBefore,
		BalanceAfter:  senderAfter,
		Notes:         senderNotes,
		TransferRef:   &transferRef,
		CreatedAt:     now,
	}
	rcptTx := models.BalanceTransaction{
		ID:            uuid.New(),
		MemberID:      rcpt.ID,
		Type:          models.BalanceTxDeposit,
		Amount:        amount,
		BalanceBefore: rcptBefore,
		BalanceAfter:  rcptAfter,
		Notes:         rcptNotes,
		TransferRef:   &transferRef,
		CreatedAt:     now,
	}

	for _, entry := range []models.BalanceTransaction{senderTx, rcptTx} {
		if err := insertBalanceTransaction(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal("failed to commit transfer", err)
	}

	sender.Balance = senderAfter
	sender.LastTransactionAt = &now
	rcpt.Balance = rcptAfter
	rcpt.LastTransactionAt = &now

	return &models.TransferResult{
		TransferRef:          transferRef,
		SenderTransaction:    senderTx,
		RecipientTransaction: rcptTx,
		Sender:               sender,
		Recipient:            rcpt,
		Amount:               amount,
		Notes:                otp.Notes,
		CompletedAt:          now,
	}, nil
}

// lockMember reads a member row under FOR UPDATE within tx
func lockMember(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM members
		WHERE id = $1 AND is_active = true
		FOR UPDATE
	`, memberColumns)

	var member models.Member
	err := tx.GetContext(ctx, &member, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Member account not found")
		}
		return nil, apperr.Internal("failed to lock member row", err)
	}

	return &member, nil
}

func updateBalance(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, balance decimal.Decimal, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE members
		SET balance = $1, last_transaction_at = $2, updated_at = $2
		WHERE id = $3
	`, balance, now, id)
	if err != nil {
		return apperr.Internal("failed to update balance", err)
	}
	return nil
}

func insertBalanceTransaction(ctx context.Context, tx *sqlx.Tx, entry models.BalanceTransaction) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO balance_transactions (id, member_id, transaction_type, amount,
			balance_before, balance_after, notes, transfer_ref, created_at
		) VALUES (:id, :member_id, :transaction_type, :amount,
			:balance_before, :balance_after, :notes, :transfer_ref, :created_at)
	`, entry)
	if err != nil {
		return apperr.Internal("failed to record balance transaction", err)
	}
	return nil
}
