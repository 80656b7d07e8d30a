package accounts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindPredicates(t *testing.T) {
	assert.True(t, IsConflict(NewConflictError()))
	assert.True(t, IsUnauthorized(NewUnauthorizedError()))
	assert.True(t, IsNotFound(NewNotFoundError(7)))

	assert.False(t, IsConflict(NewNotFoundError(7)))
	assert.False(t, IsNotFound(errors.New("plain error")))
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("store call failed: %w", NewConflictError())
	assert.True(t, IsConflict(wrapped))
}

func TestInternalErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to insert user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "failed to insert user", Reason(err))
}

func TestReason_PlainError(t *testing.T) {
	assert.Equal(t, "plain error", Reason(errors.New("plain error")))
}
