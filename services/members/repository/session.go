package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/constants"
)

// CreateSession stores a session token for a member with the given TTL
func (r *MemberRepo) CreateSession(ctx context.Context, token string, memberID uuid.UUID, ttl time.Duration) error {
	key := fmt.Sprintf(constants.KeyMemberSession, token)
	if err := r.redisClient.Set(ctx, key, memberID.String(), ttl); err != nil {
		return apperr.Internal("failed to create session", err)
	}
	return nil
}

// GetSessionMemberID resolves a session token to the owning member id
func (r *MemberRepo) GetSessionMemberID(ctx context.Context, token string) (uuid.UUID, error) {
	key := fmt.Sprintf(constants.KeyMemberSession, token)

	val, err := r.redisClient.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, apperr.Unauthorized("Session expired. Please log in again.")
		}
		return uuid.Nil, apperr.Internal("failed to look up session", err)
	}

	memberID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, apperr.Internal("corrupt session entry", err)
	}

	return memberID, nil
}
