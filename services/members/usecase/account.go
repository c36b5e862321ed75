package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/utils"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	recentCount      = 10
)

// GetAccount returns the authenticated member's account
func (u *MemberUC) GetAccount(ctx context.Context, memberID uuid.UUID) (*models.Member, error) {
	return u.memberRepo.GetMemberByID(ctx, memberID)
}

// GetAccountSummary returns the member profile together with the ten most
// recent purchases and ledger entries, plus the total spent in the selected
// month. Out-of-range month/year values fall back to the current month.
func (u *MemberUC) GetAccountSummary(ctx context.Context, memberID uuid.UUID, year, month int) (*models.AccountSummary, error) {
	member, err := u.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	recentTransactions, err := u.memberRepo.ListTransactions(ctx, memberID, recentCount, 0)
	if err != nil {
		return nil, err
	}
	recentBalanceTransactions, err := u.memberRepo.ListBalanceTransactions(ctx, memberID, recentCount, 0)
	if err != nil {
		return nil, err
	}

	// Monthly window is [first of month, first of next month)
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	totalSpent, err := u.memberRepo.SumCompletedTransactions(ctx, memberID, from, to)
	if err != nil {
		return nil, err
	}

	return &models.AccountSummary{
		Member:                    member,
		RecentTransactions:        recentTransactions,
		RecentBalanceTransactions: recentBalanceTransactions,
		TotalSpentThisMonth:       totalSpent,
		SelectedYear:              year,
		SelectedMonth:             month,
	}, nil
}

// ListTransactions returns a page of the member's completed purchases
func (u *MemberUC) ListTransactions(ctx context.Context, memberID uuid.UUID, page, limit int) ([]models.Transaction, *models.Pagination, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	transactions, err := u.memberRepo.ListTransactions(ctx, memberID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	total, err := u.memberRepo.CountTransactions(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}

	return transactions, models.NewPagination(page, limit, total), nil
}

// ListBalanceTransactions returns a page of the member's balance ledger
func (u *MemberUC) ListBalanceTransactions(ctx context.Context, memberID uuid.UUID, page, limit int) ([]models.BalanceTransaction, *models.Pagination, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	entries, err := u.memberRepo.ListBalanceTransactions(ctx, memberID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	total, err := u.memberRepo.CountBalanceTransactions(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}

	return entries, models.NewPagination(page, limit, total), nil
}

// SearchMemberByRFID looks up a transfer recipient by RFID card number. The
// caller's own card is rejected since self-transfers are not allowed.
func (u *MemberUC) SearchMemberByRFID(ctx context.Context, memberID uuid.UUID, rfid string) (*models.MemberProfile, error) {
	rfid = utils.NormalizeRFID(rfid)
	if rfid == "" {
		return nil, apperr.Validation("RFID card number is required")
	}

	recipient, err := u.memberRepo.GetMemberByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if recipient.ID == memberID {
		return nil, apperr.Validation("Cannot transfer funds to yourself")
	}

	return recipient.PublicProfile(), nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
