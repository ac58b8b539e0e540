package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WrapAndDetect(t *testing.T) {
	base := NewDuplicate("transaction", "service_id", "abc")
	wrapped := fmt.Errorf("create income: %w", base)

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsDuplicate(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(wrapped))
}

func TestAppError_InternalHidesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal(cause).WithDetail("entity", "hotel")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", err.Message)
	assert.Equal(t, "hotel", err.Details["entity"])
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}
