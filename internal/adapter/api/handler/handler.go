package handler

import (
	"immomarket/internal/infrastructure/websocket"
	"immomarket/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	propertyHandler  *PropertyHandler
	favoriteHandler  *FavoriteHandler
	chatHandler      *ChatHandler
	uploadHandler    *UploadHandler
	websocketHandler *WebSocketHandler
	healthHandler    *HealthHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	propertyUseCase *usecase.PropertyUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	chatUseCase *usecase.ChatUseCase,
	storage usecase.ImageStorage,
	wsManager *websocket.Manager,
	wsMessageHandler websocket.MessageHandler,
	environment string,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	propertyHandler = NewPropertyHandler(propertyUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	uploadHandler = NewUploadHandler(storage)
	websocketHandler = NewWebSocketHandler(wsManager, wsMessageHandler, authUseCase)
	healthHandler = NewHealthHandler(environment)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetPropertyHandler() *PropertyHandler {
	return propertyHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
