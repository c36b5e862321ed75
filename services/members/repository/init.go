package repository

import (
	"github.com/jmlagera/coop-kiosk/internal/pkg/database"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmoiron/sqlx"
)

// MemberRepo handles persistence for members, their ledgers and transfer OTPs
type MemberRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewMemberRepo creates a new member repository instance
func NewMemberRepo(cfg *models.Config, db *sqlx.DB, redisClient *database.RedisClient) *MemberRepo {
	return &MemberRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}
