package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"immomarket/internal/adapter/api"
	"immomarket/internal/adapter/api/handler"
)

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	e.Validator = api.NewValidator()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	healthHandler := handler.NewHealthHandler("test")

	if assert.NoError(t, healthHandler.Check(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"success":true`)
	}
}
