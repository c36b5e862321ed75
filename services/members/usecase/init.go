// Package usecase implements the member business logic: authentication,
// account queries and the OTP-gated fund transfer flow.
package usecase

import (
	"time"

	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/services/members"
)

// MemberUC implements the member usecase
type MemberUC struct {
	cfg        *models.Config
	memberRepo members.MemberRepo
	notifier   members.NotifierGW

	// injectable clock for deterministic expiry checks in tests
	now func() time.Time
}

// NewMemberUC creates a new member usecase instance
func NewMemberUC(cfg *models.Config, memberRepo members.MemberRepo, notifier members.NotifierGW) *MemberUC {
	return &MemberUC{
		cfg:        cfg,
		memberRepo: memberRepo,
		notifier:   notifier,
		now:        time.Now,
	}
}
