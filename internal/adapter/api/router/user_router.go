package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
	"immomarket/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetMe)
	me.PUT("", userHandler.UpdateMe)

	admin := e.Group("/v1/admin/users")
	admin.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("", userHandler.List)
	admin.DELETE("/:id", userHandler.Delete)
}
