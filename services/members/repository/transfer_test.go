package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
)

// ids chosen so the sender sorts first and lock order is predictable
var (
	transferSenderID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	transferRecipientID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func transferFixtures(amount int64) (*models.TransferOTP, *models.Member) {
	now := time.Now()
	otp := &models.TransferOTP{
		ID:            uuid.New(),
		MemberID:      transferSenderID,
		RecipientRFID: "RFID002",
		Amount:        decimal.NewFromInt(amount),
		OTPCode:       "123456",
		CreatedAt:     now,
		ExpiresAt:     now.Add(10 * time.Minute),
	}
	recipient := &models.Member{
		ID:             transferRecipientID,
		FullName:       "Maria Santos",
		RFIDCardNumber: "RFID002",
		IsActive:       true,
	}
	return otp, recipient
}

func TestExecuteTransfer_Success(t *testing.T) {
	repo, mock, cleanup := setupMemberRepoTest(t)
	defer cleanup()

	otp, recipient := transferFixtures(1000)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferSenderID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(memberRow(transferSenderID, "jdoe", "Juan Dela Cruz", "RFID001", "5000.00")...))
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferRecipientID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(memberRow(transferRecipientID, "", "Maria Santos", "RFID002", "3500.00")...))
	mock.ExpectExec("UPDATE transfer_otps").
		WithArgs(sqlmock.AnyArg(), otp.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE members").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE members").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO balance_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO balance_transactions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.ExecuteTransfer(context.Background(), otp, recipient)
	require.NoError(t, err)
	require.NotNil(t, result)

	// 5000 - 1000 = 4000 for the sender, 3500 + 1000 = 4500 for the recipient
	assert.True(t, result.Sender.Balance.Equal(decimal.NewFromInt(4000)),
		"sender balance: %s", result.Sender.Balance)
	assert.True(t, result.Recipient.Balance.Equal(decimal.NewFromInt(4500)),
		"recipient balance: %s", result.Recipient.Balance)

	assert.Equal(t, models.BalanceTxDeduction, result.SenderTransaction.Type)
	assert.True(t, result.SenderTransaction.BalanceBefore.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.SenderTransaction.BalanceAfter.Equal(decimal.NewFromInt(4000)))

	assert.Equal(t, models.BalanceTxDeposit, result.RecipientTransaction.Type)
	assert.True(t, result.RecipientTransaction.BalanceBefore.Equal(decimal.NewFromInt(3500)))
	assert.True(t, result.RecipientTransaction.BalanceAfter.Equal(decimal.NewFromInt(4500)))

	// Both ledger legs share one transfer reference
	require.NotNil(t, result.SenderTransaction.TransferRef)
	require.NotNil(t, result.RecipientTransaction.TransferRef)
	assert.Equal(t, *result.SenderTransaction.TransferRef, *result.RecipientTransaction.TransferRef)
	assert.Equal(t, result.TransferRef, *result.SenderTransaction.TransferRef)

	assert.Contains(t, result.SenderTransaction.Notes, "Fund transfer to Maria Santos (RFID002)")
	assert.Contains(t, result.RecipientTransaction.Notes, "Fund transfer from Juan Dela Cruz (RFID001)")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteTransfer_InsufficientBalance(t *testing.T) {
	repo, mock, cleanup := setupMemberRepoTest(t)
	defer cleanup()

	otp, recipient := transferFixtures(1000)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferSenderID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(memberRow(transferSenderID, "jdoe", "Juan Dela Cruz", "RFID001", "500.00")...))
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferRecipientID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(memberRow(transferRecipientID, "", "Maria Santos", "RFID002", "3500.00")...))
	mock.ExpectRollback()

	result, err := repo.ExecuteTransfer(context.Background(), otp, recipient)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientBalance, apperr.KindOf(err))
	assert.Equal(t, "Insufficient balance", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteTransfer_OTPAlreadyConsumed(t *testing.T) {
	repo, mock, cleanup := setupMemberRepoTest(t)
	defer cleanup()

	otp, recipient := transferFixtures(1000)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferSenderID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(memberRow(transferSenderID, "jdoe", "Juan Dela Cruz", "RFID001", "5000.00")...))
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferRecipientID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(memberRow(transferRecipientID, "", "Maria Santos", "RFID002", "3500.00")...))
	// A concurrent verification already flipped is_used
	mock.ExpectExec("UPDATE transfer_otps").
		WithArgs(sqlmock.AnyArg(), otp.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	result, err := repo.ExecuteTransfer(context.Background(), otp, recipient)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteTransfer_SenderRowGone(t *testing.T) {
	repo, mock, cleanup := setupMemberRepoTest(t)
	defer cleanup()

	otp, recipient := transferFixtures(1000)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM members").
		WithArgs(transferSenderID).
		WillReturnRows(sqlmock.NewRows(memberTestColumns))
	mock.ExpectRollback()

	result, err := repo.ExecuteTransfer(context.Background(), otp, recipient)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
