package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmlagera/coop-kiosk/internal/pkg/constants"
	"github.com/jmlagera/coop-kiosk/internal/utils"
	"github.com/labstack/echo/v4"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Resource    string        // resource name used in the Redis key
	Limit       int           // maximum number of requests
	Period      time.Duration // time period for the limit
}

// RateLimiterMiddleware creates a middleware for rate limiting using Redis.
// Counters are kept per resource and client IP with a rolling window equal to
// the configured period.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf(constants.KeyRateLimit, config.Resource, c.RealIP())

			count, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down should not lock members out
				return next(c)
			}
			if count == 1 {
				config.RedisClient.Expire(ctx, key, config.Period)
			}

			if count > int64(config.Limit) {
				ttl, _ := config.RedisClient.TTL(ctx, key).Result()
				c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
			}

			remaining := int64(config.Limit) - count
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			return next(c)
		}
	}
}

// LoginRateLimiter limits login attempts per client IP
func LoginRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Resource:    "login",
		Limit:       limit,
		Period:      period,
	})
}
