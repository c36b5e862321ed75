package members

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
)

// MemberUC represents the member usecase interface
type MemberUC interface {
	// authentication
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)

	// account
	GetAccount(ctx context.Context, memberID uuid.UUID) (*models.Member, error)
	GetAccountSummary(ctx context.Context, memberID uuid.UUID, year, month int) (*models.AccountSummary, error)
	ListTransactions(ctx context.Context, memberID uuid.UUID, page, limit int) ([]models.Transaction, *models.Pagination, error)
	ListBalanceTransactions(ctx context.Context, memberID uuid.UUID, page, limit int) ([]models.BalanceTransaction, *models.Pagination, error)
	SearchMemberByRFID(ctx context.Context, memberID uuid.UUID, rfid string) (*models.MemberProfile, error)

	// fund transfer
	RequestTransferOTP(ctx context.Context, memberID uuid.UUID, req *models.FundTransferRequest) (*models.OTPIssued, error)
	VerifyTransferOTP(ctx context.Context, memberID uuid.UUID, code string) (*models.TransferResult, error)
}
