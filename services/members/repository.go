package members

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// MemberRepo represents the member repository interface
type MemberRepo interface {
	// members
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetMemberByUsername(ctx context.Context, username string) (*models.Member, error)
	GetMemberByRFID(ctx context.Context, rfid string) (*models.Member, error)

	// sessions
	CreateSession(ctx context.Context, token string, memberID uuid.UUID, ttl time.Duration) error
	GetSessionMemberID(ctx context.Context, token string) (uuid.UUID, error)

	// transfer OTPs
	CreateTransferOTP(ctx context.Context, otp *models.TransferOTP) error
	GetLatestPendingOTP(ctx context.Context, memberID uuid.UUID) (*models.TransferOTP, error)

	// fund transfer, executed as a single database transaction
	ExecuteTransfer(ctx context.Context, otp *models.TransferOTP, recipient *models.Member) (*models.TransferResult, error)

	// history
	ListTransactions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, memberID uuid.UUID) (int, error)
	ListBalanceTransactions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.BalanceTransaction, error)
	CountBalanceTransactions(ctx context.Context, memberID uuid.UUID) (int, error)
	SumCompletedTransactions(ctx context.Context, memberID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
