package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
)

// CreateTransferOTP persists a new transfer OTP. Any pending OTP of the same
// member is superseded first so at most one code can ever be matched; old
// rows are kept for auditability.
func (r *MemberRepo) CreateTransferOTP(ctx context.Context, otp *models.TransferOTP) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Internal("failed to begin transaction", err)
	}
	defer tx.Rollback()

	supersede := `
		UPDATE transfer_otps
		SET is_superseded = true
		WHERE member_id = $1 AND is_used = false AND is_superseded = false
	`
	if _, err := tx.ExecContext(ctx, supersede, otp.MemberID); err != nil {
		return apperr.Internal("failed to supersede pending OTPs", err)
	}

	insert := `
		INSERT INTO transfer_otps (id, member_id, recipient_rfid, amount, notes,
			otp_code, created_at, expires_at, is_used, is_superseded
		) VALUES (:id, :member_id, :recipient_rfid, :amount, :notes,
			:otp_code, :created_at, :expires_at, :is_used, :is_superseded)
	`
	if _, err := tx.NamedExecContext(ctx, insert, otp); err != nil {
		return apperr.Internal("failed to create transfer OTP", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal("failed to commit transaction", err)
	}

	return nil
}

// GetLatestPendingOTP retrieves the most recent unused, unsuperseded OTP for
// a member. Expiry is not checked here; the caller evaluates it lazily.
func (r *MemberRepo) GetLatestPendingOTP(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
	query := `
		SELECT id, member_id, recipient_rfid, amount, notes, otp_code,
			created_at, expires_at, is_used, is_superseded, verified_at
		FROM transfer_otps
		WHERE member_id = $1 AND is_used = false AND is_superseded = false
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp models.TransferOTP
	err := r.db.GetContext(ctx, &otp, query, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No pending transfer found. Please request a new verification code.")
		}
		return nil, apperr.Internal("failed to get transfer OTP", err)
	}

	return &otp, nil
}
