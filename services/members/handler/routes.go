// Package handler wires the mobile member API routes
package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmlagera/coop-kiosk/internal/pkg/health"
	"github.com/jmlagera/coop-kiosk/internal/pkg/middleware"
	"github.com/jmlagera/coop-kiosk/internal/pkg/models"
	"github.com/jmlagera/coop-kiosk/services/members"
	memberhttp "github.com/jmlagera/coop-kiosk/services/members/handler/http"
	"github.com/labstack/echo/v4"
)

const (
	loginRateLimit  = 10
	loginRatePeriod = time.Minute
)

// RegisterRoutes registers the mobile member API under /api/mobile. Login and
// the health probe are public; everything else requires a session cookie or a
// Bearer token.
func RegisterRoutes(e *echo.Echo, cfg *models.Config, memberUC members.MemberUC, sessions middleware.SessionStore, redisClient *redis.Client, dbCheck health.Checker) {
	h := memberhttp.NewMemberHandler(cfg, memberUC)

	api := e.Group("/api/mobile")

	api.POST("/login/", h.Login, middleware.LoginRateLimiter(loginRateLimit, loginRatePeriod, redisClient))
	api.GET("/health/", health.NewCheckHandler(dbCheck))

	auth := api.Group("", middleware.MemberAuthMiddleware(cfg.JWT, sessions))
	auth.GET("/account/", h.GetAccount)
	auth.GET("/account/summary/", h.GetAccountSummary)
	auth.GET("/transactions/", h.ListTransactions)
	auth.GET("/balance-transactions/", h.ListBalanceTransactions)
	auth.GET("/search-member/", h.SearchMember)
	auth.POST("/fund-transfer/request-otp/", h.RequestTransferOTP)
	auth.POST("/fund-transfer/verify-otp/", h.VerifyTransferOTP)
}
