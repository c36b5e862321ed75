package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/logger"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/utils"
)

// RequestTransferOTP validates a transfer request, issues a fresh OTP and
// queues its delivery to the requester's email. Any previously pending OTP of
// the member is superseded; the response never contains the code itself.
func (u *MemberUC) RequestTransferOTP(ctx context.Context, memberID uuid.UUID, req *models.FundTransferRequest) (*models.OTPIssued, error) {
	rfid := utils.NormalizeRFID(req.RecipientRFID)
	if rfid == "" {
		return nil, apperr.Validation("Recipient RFID card number is required")
	}

	amount := req.Amount
	if !amount.IsPositive() {
		return nil, apperr.Validation("Transfer amount must be greater than zero")
	}
	if amount.Exponent() < -2 {
		return nil, apperr.Validation("Transfer amount cannot have more than two decimal places")
	}

	member, err := u.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Balance.LessThan(amount) {
		return nil, apperr.InsufficientBalance("Insufficient balance")
	}
	if member.Email == "" {
		return nil, apperr.Validation("Email address is required for OTP verification. Please update your profile.")
	}

	recipient, err := u.memberRepo.GetMemberByRFID(ctx, rfid)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Recipient member not found")
		}
		return nil, err
	}
	if recipient.ID == member.ID {
		return nil, apperr.Validation("Cannot transfer funds to yourself")
	}

	code, err := models.GenerateOTPCode()
	if err != nil {
		return nil, apperr.Internal("failed to generate OTP code", err)
	}

	now := u.now()
	ttl := time.Duration(u.cfg.Transfer.OTPTTLSeconds) * time.Second
	otp := &models.TransferOTP{
		ID:            uuid.New(),
		MemberID:      member.ID,
		RecipientRFID: rfid,
		Amount:        amount,
		Notes:         strings.TrimSpace(req.Notes),
		OTPCode:       code,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
	if err := u.memberRepo.CreateTransferOTP(ctx, otp); err != nil {
		return nil, err
	}

	// Delivery is fire-and-forget; the response doesn't wait on SMTP
	u.notifier.NotifyTransferOTP(member, recipient, otp, ttl)

	logger.Info("transfer OTP issued",
		logger.String("member_id", member.ID.String()),
		logger.String("recipient_rfid", rfid))

	return &models.OTPIssued{
		Email:     member.Email,
		ExpiresIn: u.cfg.Transfer.OTPTTLSeconds,
	}, nil
}

// VerifyTransferOTP checks the submitted code against the member's pending OTP
// and, if it matches and is still valid, executes the transfer atomically and
// queues completion emails to both parties.
func (u *MemberUC) VerifyTransferOTP(ctx context.Context, memberID uuid.UUID, code string) (*models.TransferResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperr.Validation("OTP code is required")
	}
	if !utils.IsValidOTPCode(code) {
		return nil, apperr.Validation("OTP code must be exactly 6 digits")
	}

	otp, err := u.memberRepo.GetLatestPendingOTP(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if otp.OTPCode != code {
		return nil, apperr.InvalidCode("Invalid or expired OTP code")
	}
	if otp.IsExpired(u.now()) {
		return nil, apperr.Expired("OTP code has expired. Please request a new one.")
	}

	// Re-check balance; it may have changed since the OTP was requested
	member, err := u.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.Balance.LessThan(otp.Amount) {
		return nil, apperr.InsufficientBalance("Insufficient balance")
	}

	recipient, err := u.memberRepo.GetMemberByRFID(ctx, otp.RecipientRFID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NotFound("Recipient member not found")
		}
		return nil, err
	}
	if recipient.ID == member.ID {
		return nil, apperr.Validation("Cannot transfer funds to yourself")
	}

	result, err := u.memberRepo.ExecuteTransfer(ctx, otp, recipient)
	if err != nil {
		return nil, err
	}

	u.notifier.NotifyTransferCompleted(result)

	logger.Info("fund transfer completed",
		logger.String("transfer_ref", result.TransferRef.String()),
		logger.String("sender_id", result.Sender.ID.String()),
		logger.String("recipient_id", result.Recipient.ID.String()),
		logger.String("amount", result.Amount.String()))

	return result, nil
}
