package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
	"immomarket/internal/adapter/api/middleware"
)

func SetupPropertyRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	verifier middleware.TokenVerifier,
) {
	propertyHandler := handler.GetPropertyHandler()

	// Public feed. The detail route takes an optional token so owners can
	// see their own pending listings.
	public := e.Group("/v1/properties")
	public.Use(OptionalAuth(verifier))
	public.GET("", propertyHandler.List)
	public.GET("/search", propertyHandler.Search)
	public.GET("/:id", propertyHandler.Get)

	mine := e.Group("/v1/my-properties")
	mine.Use(authMiddleware.Authenticate)
	mine.GET("", propertyHandler.ListMine)
	mine.POST("", propertyHandler.Create)
	mine.PUT("/:id", propertyHandler.Update)
	mine.DELETE("/:id", propertyHandler.Delete)

	admin := e.Group("/v1/admin/properties")
	admin.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	admin.GET("", propertyHandler.AdminList)
	admin.GET("/:id", propertyHandler.Get)
	admin.POST("/:id/approve", propertyHandler.Approve)
	admin.POST("/:id/reject", propertyHandler.Reject)
	admin.DELETE("/:id", propertyHandler.Delete)
}
