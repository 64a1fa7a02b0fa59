package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("predict: %w", NewValidationError("category", "is required"))

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrStore))

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "category", vErr.Field)
	assert.Equal(t, "category: is required", vErr.Error())
}

func TestStoreError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("list categories", cause)

	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "list categories: connection refused", err.Error())
}

func TestCustomError_CarriesMessage(t *testing.T) {
	err := NewConflictError("email already registered")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "email already registered", err.Error())

	var cErr *CustomError
	assert.True(t, errors.As(err, &cErr))
	assert.Equal(t, ErrResourceNotFound.Error(), (&CustomError{Err: ErrResourceNotFound}).Error())
}
