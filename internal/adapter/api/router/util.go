package router

import (
	"strings"

	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/middleware"
)

// OptionalAuth sets the caller's uid when a valid bearer token is present
// and continues anonymously otherwise.
func OptionalAuth(verifier middleware.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return next(c)
			}

			uid, err := verifier.VerifyToken(c.Request().Context(), parts[1])
			if err != nil {
				return next(c)
			}

			c.Set("uid", uid)
			return next(c)
		}
	}
}
