package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
)

var (
	testSenderID    = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testRecipientID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testClock       = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
)

func testConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret",
			Expiration: 60,
			Issuer:     "coop-kiosk-test",
		},
		Transfer: models.TransferConfig{
			OTPTTLSeconds:   600,
			SessionTTLHours: 168,
		},
	}
}

func testSender(balance int64) *models.Member {
	return &models.Member{
		ID:             testSenderID,
		Username:       "jdoe",
		FullName:       "Juan Dela Cruz",
		RFIDCardNumber: "RFID001",
		Email:          "jdoe@example.com",
		Balance:        decimal.NewFromInt(balance),
		Role:           models.RoleMember,
		IsActive:       true,
	}
}

func testRecipient() *models.Member {
	return &models.Member{
		ID:             testRecipientID,
		FullName:       "Maria Santos",
		RFIDCardNumber: "RFID002",
		Email:          "maria@example.com",
		Balance:        decimal.NewFromInt(3500),
		Role:           models.RoleMember,
		IsActive:       true,
	}
}

func newTestUC(repo *mockMemberRepo, notifier *mockNotifier) *MemberUC {
	uc := NewMemberUC(testConfig(), repo, notifier)
	uc.now = func() time.Time { return testClock }
	return uc
}

func pendingOTP(amount int64, issuedAt time.Time) *models.TransferOTP {
	return &models.TransferOTP{
		ID:            uuid.New(),
		MemberID:      testSenderID,
		RecipientRFID: "RFID002",
		Amount:        decimal.NewFromInt(amount),
		OTPCode:       "123456",
		CreatedAt:     issuedAt,
		ExpiresAt:     issuedAt.Add(600 * time.Second),
	}
}

func TestRequestTransferOTP_Success(t *testing.T) {
	var created *models.TransferOTP
	repo := &mockMemberRepo{
		getMemberByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Member, error) {
			return testSender(5000), nil
		},
		getMemberByRFIDFn: func(ctx context.Context, rfid string) (*models.Member, error) {
			assert.Equal(t, "RFID002", rfid)
			return testRecipient(), nil
		},
		createTransferOTPFn: func(ctx context.Context, otp *models.TransferOTP) error {
			created = otp
			return nil
		},
	}
	notifier := &mockNotifier{}
	uc := newTestUC(repo, notifier)

	issued, err := uc.RequestTransferOTP(context.Background(), testSenderID, &models.FundTransferRequest{
		RecipientRFID: " RFID002 ",
		Amount:        decimal.NewFromInt(1000),
		Notes:         "lunch money",
	})

	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", issued.Email)
	assert.Equal(t, 600, issued.ExpiresIn)

	require.NotNil(t, created)
	assert.Len(t, created.OTPCode, 6)
	assert.Equal(t, testClock, created.CreatedAt)
	assert.Equal(t, testClock.Add(600*time.Second), created.ExpiresAt)
	assert.Equal(t, "lunch money", created.Notes)

	assert.Equal(t, 1, notifier.otpCalls)
	assert.Equal(t, created, notifier.lastOTP)
	assert.Equal(t, 600*time.Second, notifier.lastOTPTTL)
}

func TestRequestTransferOTP_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		req     *models.FundTransferRequest
		wantMsg string
	}{
		{
			name:    "Missing recipient",
			req:     &models.FundTransferRequest{Amount: decimal.NewFromInt(100)},
			wantMsg: "Recipient RFID card number is required",
		},
		{
			name:    "Zero amount",
			req:     &models.FundTransferRequest{RecipientRFID: "RFID002", Amount: decimal.Zero},
			wantMsg: "Transfer amount must be greater than zero",
		},
		{
			name:    "Negative amount",
			req:     &models.FundTransferRequest{RecipientRFID: "RFID002", Amount: decimal.NewFromInt(-5)},
			wantMsg: "Transfer amount must be greater than zero",
		},
		{
			name: "Three decimal places",
			req: &models.FundTransferRequest{
				RecipientRFID: "RFID002",
				Amount:        decimal.RequireFromString("10.005"),
			},
			wantMsg: "Transfer amount cannot have more than two decimal places",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestUC(&mockMemberRepo{}, &mockNotifier{})

			issued, err := uc.RequestTransferOTP(context.Background(), testSenderID, tc.req)
			assert.Nil(t, issued)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestRequestTransferOTP_InsufficientBalance(t *testing.T) {
	repo := &mockMemberRepo{
		getMemberByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Member, error) {
			return testSender(500), nil
		},
	}
	uc := newTestUC(repo, &mockNotifier{})

	issued, err := uc.RequestTransferOTP(context.Background(), testSenderID, &models.FundTransferRequest{
		RecipientRFID: "RFID002",
		Amount:        decimal.NewFromInt(1000),
	})
	assert.Nil(t, issued)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientBalance, apperr.KindOf(err))
}

func TestRequestTransferOTP_NoEmail(t *testing.T) {
	repo := &mockMemberRepo{
		getMemberByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Member, error) {
			sender := testSender(5000)
			sender.Email = ""
			return sender, nil
		},
	}
	uc := newTestUC(repo, &mockNotifier{})

	issued, err := uc.RequestTransferOTP(context.Background(), testSenderID, &models.FundTransferRequest{
		RecipientRFID: "RFID002",
		Amount:        decimal.NewFromInt(100),
	})
	assert.Nil(t, issued)
	require.Error(t, err)
	assert.Equal(t, "Email address is required for OTP verification. Please update your profile.", err.Error())
}

func TestRequestTransferOTP_SelfTransfer(t *testing.T) {
	repo := &mockMemberRepo{
		getMemberByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Member, error) {
			return testSender(5000), nil
		},
		getMemberByRFIDFn: func(ctx context.Context, rfid string) (*models.Member, error) {
			return testSender(5000), nil
		},
	}
	uc := newTestUC(repo, &mockNotifier{})

	issued, err := uc.RequestTransferOTP(context.Background(), testSenderID, &models.FundTransferRequest{
		RecipientRFID: "RFID001",
		Amount:        decimal.NewFromInt(100),
	})
	assert.Nil(t, issued)
	require.Error(t, err)
	assert.Equal(t, "Cannot transfer funds to yourself", err.Error())
}

func TestVerifyTransferOTP_Success(t *testing.T) {
	otp := pendingOTP(1000, testClock.Add(-30*time.Second))

	expected := &models.TransferResult{
		TransferRef: uuid.New(),
		Sender:      *testSender(4000),
		Recipient:   *testRecipient(),
		Amount:      otp.Amount,
		CompletedAt: testClock,
	}
	expected.Recipient.Balance = decimal.NewFromInt(4500)

	repo := &mockMemberRepo{
		getLatestPendingOTPFn: func(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
			return otp, nil
		},
		getMemberByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Member, error) {
			return testSender(5000), nil
		},
		getMemberByRFIDFn: func(ctx context.Context, rfid string) (*models.Member, error) {
			assert.Equal(t, "RFID002", rfid)
			return testRecipient(), nil
		},
		executeTransferFn: func(ctx context.Context, gotOTP *models.TransferOTP, recipient *models.Member) (*models.TransferResult, error) {
			assert.Equal(t, otp, gotOTP)
			assert.Equal(t, testRecipientID, recipient.ID)
			return expected, nil
		},
	}
	notifier := &mockNotifier{}
	uc := newTestUC(repo, notifier)

	result, err := uc.VerifyTransferOTP(context.Background(), testSenderID, "123456")
	require.NoError(t, err)
	assert.Equal(t, expected, result)

	assert.Equal(t, 1, notifier.completedCalls)
	assert.Equal(t, expected, notifier.lastResult)
}

func TestVerifyTransferOTP_Expired(t *testing.T) {
	// Issued 601 seconds ago with a 600 second TTL
	otp := pendingOTP(1000, testClock.Add(-601*time.Second))

	repo := &mockMemberRepo{
		getLatestPendingOTPFn: func(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
			return otp, nil
		},
		executeTransferFn: func(ctx context.Context, otp *models.TransferOTP, recipient *models.Member) (*models.TransferResult, error) {
			t.Fatal("transfer must not execute for an expired OTP")
			return nil, nil
		},
	}
	notifier := &mockNotifier{}
	uc := newTestUC(repo, notifier)

	result, err := uc.VerifyTransferOTP(context.Background(), testSenderID, "123456")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindExpired, apperr.KindOf(err))
	assert.Equal(t, "OTP code has expired. Please request a new one.", err.Error())
	assert.Zero(t, notifier.completedCalls)
}

func TestVerifyTransferOTP_WrongCode(t *testing.T) {
	otp := pendingOTP(1000, testClock.Add(-30*time.Second))

	repo := &mockMemberRepo{
		getLatestPendingOTPFn: func(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
			return otp, nil
		},
	}
	uc := newTestUC(repo, &mockNotifier{})

	result, err := uc.VerifyTransferOTP(context.Background(), testSenderID, "999999")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidCode, apperr.KindOf(err))
	assert.Equal(t, "Invalid or expired OTP code", err.Error())
}

func TestVerifyTransferOTP_NoPending(t *testing.T) {
	// Second verification of a consumed OTP lands here: the pending lookup
	// finds nothing because the row was marked used by the first one
	repo := &mockMemberRepo{
		getLatestPendingOTPFn: func(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
			return nil, apperr.NotFound("No pending transfer found. Please request a new verification code.")
		},
	}
	uc := newTestUC(repo, &mockNotifier{})

	result, err := uc.VerifyTransferOTP(context.Background(), testSenderID, "123456")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestVerifyTransferOTP_BalanceDroppedSinceRequest(t *testing.T) {
	otp := pendingOTP(1000, testClock.Add(-30*time.Second))

	repo := &mockMemberRepo{
		getLatestPendingOTPFn: func(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
			return otp, nil
		},
		getMemberByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Member, error) {
			// Balance was spent at the kiosk between request and verify
			return testSender(200), nil
		},
	}
	uc := newTestUC(repo, &mockNotifier{})

	result, err := uc.VerifyTransferOTP(context.Background(), testSenderID, "123456")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientBalance, apperr.KindOf(err))
}

func TestVerifyTransferOTP_CodeFormat(t *testing.T) {
	uc := newTestUC(&mockMemberRepo{}, &mockNotifier{})

	for _, code := range []string{"", "12345", "1234567", "12345a"} {
		result, err := uc.VerifyTransferOTP(context.Background(), testSenderID, code)
		assert.Nil(t, result)
		require.Error(t, err, "code %q", code)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}
