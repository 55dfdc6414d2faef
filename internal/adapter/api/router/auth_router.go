package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
	"immomarket/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/reset-password", authHandler.ResetPassword)

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/change-password", authHandler.ChangePassword)
	protected.POST("/logout", authHandler.Logout)
}
