package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	jwtpkg "github.com/jmlagera/coop-kiosk/internal/pkg/jwt"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/internal/utils"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the mobile session token
const SessionCookieName = "sessionid"

// SessionStore resolves a session token to a member id
type SessionStore interface {
	GetSessionMemberID(ctx context.Context, token string) (uuid.UUID, error)
}

// MemberAuthMiddleware authenticates mobile requests. A session cookie is
// tried first (members without a username log in by RFID and only hold a
// session); a Bearer JWT is accepted as the alternate path.
func MemberAuthMiddleware(cfg models.JWTConfig, sessions SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				memberID, err := sessions.GetSessionMemberID(c.Request().Context(), cookie.Value)
				if err == nil {
					c.Set("member_id", memberID)
					return next(c)
				}
				// Fall through to the bearer path; the cookie may simply
				// have expired while a valid token is still attached.
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authentication required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], cfg.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			memberIDClaim, ok := (*claims)["member_id"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing member_id claim")
			}

			memberID, err := uuid.Parse(fmt.Sprintf("%v", memberIDClaim))
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: member_id is not a valid UUID")
			}

			c.Set("member_id", memberID)
			if role, ok := (*claims)["role"]; ok {
				c.Set("member_role", role)
			}

			return next(c)
		}
	}
}

// MemberIDFromContext extracts the authenticated member id set by the auth
// middleware
func MemberIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get("member_id").(uuid.UUID)
	return id, ok
}
