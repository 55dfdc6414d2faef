package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	verifier middleware.TokenVerifier,
) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupPropertyRouter(e, authMiddleware, adminMiddleware, verifier)
	SetupFavoriteRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupUploadRouter(e, authMiddleware, rateLimitMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
