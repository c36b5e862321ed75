package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase transaction statuses
const (
	TxStatusCompleted = "completed"
	TxStatusPending   = "pending"
	TxStatusCancelled = "cancelled"
)

// Transaction represents a kiosk purchase made by a member
type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	MemberID    uuid.UUID       `json:"member_id" db:"member_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status      string          `json:"status" db:"status"`
	ItemCount   int             `json:"item_count" db:"item_count"`
	Notes       string          `json:"notes" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// MarshalJSON renders the amount with exactly two fractional digits
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		TotalAmount string `json:"total_amount"`
	}{alias(t), t.TotalAmount.StringFixed(2)})
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPagination computes pagination metadata for a page/limit window
func NewPagination(page, limit, total int) *Pagination {
	return &Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		HasNext:     page*limit < total,
		HasPrevious: page > 1,
	}
}

// AccountSummary aggregates a member's profile with recent activity
type AccountSummary struct {
	Member                    *Member              `json:"member"`
	RecentTransactions        []Transaction        `json:"recent_transactions"`
	RecentBalanceTransactions []BalanceTransaction `json:"recent_balance_transactions"`
	TotalSpentThisMonth       decimal.Decimal      `json:"total_spent_this_month"`
	SelectedYear              int                  `json:"selected_year"`
	SelectedMonth             int                  `json:"selected_month"`
}

// MarshalJSON renders the monthly total with exactly two fractional digits
func (s AccountSummary) MarshalJSON() ([]byte, error) {
	type alias AccountSummary
	return json.Marshal(struct {
		alias
		TotalSpentThisMonth string `json:"total_spent_this_month"`
	}{alias(s), s.TotalSpentThisMonth.StringFixed(2)})
}
