package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("Property", nil).Status)
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad", nil).Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("no", nil).Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("no", nil).Status)
	assert.Equal(t, http.StatusInternalServerError, Internal("boom", nil).Status)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Status)
}

func TestIsMatchesWrappedErrors(t *testing.T) {
	base := NotFound("Property", nil)
	wrapped := fmt.Errorf("loading listing: %w", base)

	assert.True(t, Is(wrapped, "NOT_FOUND"))
	assert.False(t, Is(wrapped, "BAD_REQUEST"))
	assert.False(t, Is(fmt.Errorf("plain"), "NOT_FOUND"))
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	assert.Equal(t, "Property not found", NotFound("Property", nil).Message)
}
