package router

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo) {
	e.GET("/ws", handler.GetWebSocketHandler().Connect)
}
