// Package http contains the echo handlers for the mobile member API
package http

import (
	"github.com/google/uuid"
	"github.com/jmlagera/coop-kiosk/internal/pkg/apperr"
	"github.com/jmlagera/coop-kiosk/internal/pkg/middleware"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/services/members"
	"github.com/labstack/echo/v4"
)

// MemberHandler handles mobile member API requests
type MemberHandler struct {
	cfg      *models.Config
	memberUC members.MemberUC
}

// NewMemberHandler creates a new member API handler
func NewMemberHandler(cfg *models.Config, memberUC members.MemberUC) *MemberHandler {
	return &MemberHandler{
		cfg:      cfg,
		memberUC: memberUC,
	}
}

// memberID extracts the authenticated member id from the request context.
// Callers map the returned error through utils.AppErrorResponse, which turns
// it into the 401 envelope.
func memberID(c echo.Context) (uuid.UUID, error) {
	id, ok := middleware.MemberIDFromContext(c)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("Authentication required")
	}
	return id, nil
}
