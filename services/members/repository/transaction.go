package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// ListTransactions returns a page of completed purchase transactions for a
// member, newest first.
func (r *MemberRepo) ListTransactions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	query := `
		SELECT id, member_id, total_amount, status, item_count, notes, created_at
		FROM transactions
		WHERE member_id = $1 AND status = 'completed'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	transactions := []models.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, memberID, limit, offset); err != nil {
		return nil, apperr.Internal("failed to list transactions", err)
	}

	return transactions, nil
}

// CountTransactions returns the total number of completed purchase
// transactions for a member.
func (r *MemberRepo) CountTransactions(ctx context.Context, memberID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM transactions
		WHERE member_id = $1 AND status = 'completed'
	`

	var total int
	if err := r.db.GetContext(ctx, &total, query, memberID); err != nil {
		return 0, apperr.Internal("failed to count transactions", err)
	}

	return total, nil
}

// ListBalanceTransactions returns a page of balance ledger entries for a
// member, newest first.
func (r *MemberRepo) ListBalanceTransactions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]models.BalanceTransaction, error) {
	query := `
		SELECT id, member_id, transaction_type, amount, balance_before,
			balance_after, notes, transfer_ref, created_at
		FROM balance_transactions
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	entries := []models.BalanceTransaction{}
	if err := r.db.SelectContext(ctx, &entries, query, memberID, limit, offset); err != nil {
		return nil, apperr.Internal("failed to list balance transactions", err)
	}

	return entries, nil
}

// CountBalanceTransactions returns the total number of balance ledger entries
// for a member.
func (r *MemberRepo) CountBalanceTransactions(ctx context.Context, memberID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM balance_transactions WHERE member_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, query, memberID); err != nil {
		return 0, apperr.Internal("failed to count balance transactions", err)
	}

	return total, nil
}

// SumCompletedTransactions sums the completed purchase spend of a member
// within [from, to).
func (r *MemberRepo) SumCompletedTransactions(ctx context.Context, memberID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0) FROM transactions
		WHERE member_id = $1 AND status = 'completed'
			AND created_at >= $2 AND created_at < $3
	`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, memberID, from, to); err != nil {
		return decimal.Zero, apperr.Internal("failed to sum transactions", err)
	}

	return total, nil
}
