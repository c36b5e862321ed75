package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
)

const memberColumns = `id, username, full_name, rfid_card_number, email, pin_hash,
		balance, role, is_active, last_transaction_at, created_at, updated_at`

// GetMemberByID retrieves an active member by id
func (r *MemberRepo) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM members
		WHERE id = $1 AND is_active = true
	`, memberColumns)

	var member models.Member
	err := r.db.GetContext(ctx, &member, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Member account not found")
		}
		return nil, apperr.Internal("failed to get member", err)
	}

	return &member, nil
}

// GetMemberByUsername retrieves an active member by username
func (r *MemberRepo) GetMemberByUsername(ctx context.Context, username string) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM members
		WHERE username = $1 AND is_active = true
	`, memberColumns)

	var member models.Member
	err := r.db.GetContext(ctx, &member, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Member account not found or is inactive. Please contact administrator.")
		}
		return nil, apperr.Internal("failed to get member", err)
	}

	return &member, nil
}

// GetMemberByRFID retrieves an active member by RFID card number
func (r *MemberRepo) GetMemberByRFID(ctx context.Context, rfid string) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM members
		WHERE rfid_card_number = $1 AND is_active = true
	`, memberColumns)

	var member models.Member
	err := r.db.GetContext(ctx, &member, query, rfid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Member not found with the provided RFID card number")
		}
		return nil, apperr.Internal("failed to get member", err)
	}

	return &member, nil
}
