package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
	"immomarket/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)

	favorites.GET("", favoriteHandler.List)
	favorites.POST("/:propertyId", favoriteHandler.Add)
	favorites.DELETE("/:propertyId", favoriteHandler.Remove)
	favorites.GET("/:propertyId/status", favoriteHandler.Status)
	favorites.POST("/:propertyId/toggle", favoriteHandler.Toggle)
}
