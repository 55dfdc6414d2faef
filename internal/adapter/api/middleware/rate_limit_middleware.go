package middleware

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/infrastructure/ratelimit"
	"immomarket/pkg/errors"
	"immomarket/pkg/logger"
	"immomarket/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit gates a route by a named action bucket, keyed on the authenticated
// user. It must run after Authenticate.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}

			if allowed, wait := m.limiter.Allow(uid, action); !allowed {
				logger.Warn("Rate limited %s for %s, retry in %s", action, uid, wait)
				return response.Error(c, errors.TooManyRequests("Too many requests. Please slow down"))
			}

			return next(c)
		}
	}
}
