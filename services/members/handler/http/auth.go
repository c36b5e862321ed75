package http

import (
	nethttp "net/http"

	"github.com/jmlagera/coop-kiosk/internal/pkg/middleware"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/utils"
	"github.com/labstack/echo/v4"
)

// Login handles POST /api/mobile/login/
func (h *MemberHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid JSON format")
	}

	resp, err := h.memberUC.Login(c.Request().Context(), &req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	c.SetCookie(&nethttp.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    resp.SessionID,
		MaxAge:   h.cfg.Transfer.SessionTTLHours * 3600,
		Path:     "/",
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})

	return utils.SuccessResponse(c, nethttp.StatusOK, echo.Map{
		"member":     resp.Member,
		"token":      resp.Token,
		"session_id": resp.SessionID,
		"expires_at": resp.ExpiresAt,
		"message":    resp.Message,
	})
}
