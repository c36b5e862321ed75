package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// mockMemberRepo implements members.MemberRepo with overridable functions
type mockMemberRepo struct {
	getMemberByIDFn       func(ctx context.Context, id uuid.UUID) (*models.Member, error)
	getMemberByUsernameFn func(ctx context.Context, username string) (*models.Member, error)
	getMemberByRFIDFn     func(ctx context.Context, rfid string) (*models.Member, error)

	createSessionFn      func(ctx context.Context, token string, memberID uuid.UUID, ttl time.Duration) error
	getSessionMemberIDFn func(ctx context.Context, token string) (uuid.UUID, error)

	createTransferOTPFn   func(ctx context.Context, otp *models.TransferOTP) error
	getLatestPendingOTPFn func(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error)
	executeTransferFn     func(ctx context.Context, otp *models.TransferOTP, recipient *models.Member) (*models.TransferResult, error)

	listTransactionsFn         func(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.Transaction, error)
	countTransactionsFn        func(ctx context.Context, memberID uuid.UUID) (int, error)
	listBalanceTransactionsFn  func(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.BalanceTransaction, error)
	countBalanceTransactionsFn func(ctx context.Context, memberID uuid.UUID) (int, error)
	sumCompletedTransactionsFn func(ctx context.Context, memberID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

func (m *mockMemberRepo) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return m.getMemberByIDFn(ctx, id)
}

func (m *mockMemberRepo) GetMemberByUsername(ctx context.Context, username string) (*models.Member, error) {
	return m.getMemberByUsernameFn(ctx, username)
}

func (m *mockMemberRepo) GetMemberByRFID(ctx context.Context, rfid string) (*models.Member, error) {
	return m.getMemberByRFIDFn(ctx, rfid)
}

func (m *mockMemberRepo) CreateSession(ctx context.Context, token string, memberID uuid.UUID, ttl time.Duration) error {
	if m.createSessionFn == nil {
		return nil
	}
	return m.createSessionFn(ctx, token, memberID, ttl)
}

func (m *mockMemberRepo) GetSessionMemberID(ctx context.Context, token string) (uuid.UUID, error) {
	return m.getSessionMemberIDFn(ctx, token)
}

func (m *mockMemberRepo) CreateTransferOTP(ctx context.Context, otp *models.TransferOTP) error {
	return m.createTransferOTPFn(ctx, otp)
}

func (m *mockMemberRepo) GetLatestPendingOTP(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error) {
	return m.getLatestPendingOTPFn(ctx, memberID)
}

func (m *mockMemberRepo) ExecuteTransfer(ctx context.Context, otp *models.TransferOTP, recipient *models.Member) (*models.TransferResult, error) {
	return m.executeTransferFn(ctx, otp, recipient)
}

func (m *mockMemberRepo) ListTransactions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	return m.listTransactionsFn(ctx, memberID, limit, offset)
}

func (m *mockMemberRepo) CountTransactions(ctx context.Context, memberID uuid.UUID) (int, error) {
	return m.countTransactionsFn(ctx, memberID)
}

func (m *mockMemberRepo) ListBalanceTransactions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.BalanceTransaction, error) {
	return m.listBalanceTransactionsFn(ctx, memberID, limit, offset)
}

func (m *mockMemberRepo) CountBalanceTransactions(ctx context.Context, memberID uuid.UUID) (int, error) {
	return m.countBalanceTransactionsFn(ctx, memberID)
}

func (m *mockMemberRepo) SumCompletedTransactions(ctx context.Context, memberID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	return m.sumCompletedTransactionsFn(ctx, memberID, from, to)
}

// mockNotifier records notification calls; delivery is synchronous here
type mockNotifier struct {
	otpCalls       int
	lastOTP        *models.TransferOTP
	lastOTPTTL     time.Duration
	completedCalls int
	lastResult     *models.TransferResult
}

func (m *mockNotifier) NotifyTransferOTP(sender *models.Member, recipient *models.Member, otp *models.TransferOTP, ttl time.Duration) {
	m.otpCalls++
	m.lastOTP = otp
	m.lastOTPTTL = ttl
}

func (m *mockNotifier) NotifyTransferCompleted(result *models.TransferResult) {
	m.completedCalls++
	m.lastResult = result
}
