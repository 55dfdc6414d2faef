package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
	"immomarket/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.List)
	chats.POST("", chatHandler.Create)
	chats.GET("/:id", chatHandler.Get)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.POST("/:id/read", chatHandler.MarkAsRead)
}
