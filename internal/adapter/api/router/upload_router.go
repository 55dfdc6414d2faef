package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
	"immomarket/internal/adapter/api/middleware"
)

func SetupUploadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	uploadHandler := handler.GetUploadHandler()

	uploads := e.Group("/v1/uploads")
	uploads.Use(authMiddleware.Authenticate)

	uploads.POST("/images", uploadHandler.UploadImages, rateLimitMiddleware.Limit("upload_image"))
	uploads.DELETE("/images", uploadHandler.DeleteImages)
}
