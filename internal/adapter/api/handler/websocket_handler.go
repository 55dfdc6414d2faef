package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"immomarket/internal/infrastructure/websocket"
	"immomarket/internal/usecase"
	"immomarket/pkg/errors"
	"immomarket/pkg/logger"
	"immomarket/pkg/response"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Mobile clients carry no Origin header; auth happens via the token.
		return true
	},
}

type WebSocketHandler struct {
	manager        *websocket.Manager
	messageHandler websocket.MessageHandler
	authUseCase    *usecase.AuthUseCase
}

func NewWebSocketHandler(manager *websocket.Manager, messageHandler websocket.MessageHandler, authUseCase *usecase.AuthUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		manager:        manager,
		messageHandler: messageHandler,
		authUseCase:    authUseCase,
	}
}

// Connect upgrades an authenticated request to a WebSocket connection. The
// token travels as a query parameter because browsers cannot set headers on
// WebSocket handshakes.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Token is required", nil))
	}

	uid, err := h.authUseCase.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed for %s: %v", uid, err)
		return nil
	}

	client := websocket.NewClient(uid, conn)
	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.manager, h.messageHandler)

	return nil
}
