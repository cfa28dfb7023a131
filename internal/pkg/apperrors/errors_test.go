package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelCategories(t *testing.T) {
	assert.True(t, errors.Is(ErrPersonNotFound, ErrResourceNotFound))
	assert.True(t, errors.Is(ErrRoleNotFound, ErrResourceNotFound))

	assert.True(t, errors.Is(ErrPersonExists, ErrConflict))
	assert.True(t, errors.Is(ErrEmailExists, ErrConflict))
	assert.True(t, errors.Is(ErrIdentifierExists, ErrConflict))
	assert.True(t, errors.Is(ErrIdentifierExhausted, ErrConflict))

	assert.True(t, errors.Is(ErrUnknownRoleType, ErrBadRequest))
	assert.True(t, errors.Is(ErrUnknownStatus, ErrBadRequest))

	assert.False(t, errors.Is(ErrInvalidTransition, ErrConflict))
	assert.False(t, errors.Is(ErrPersonNotFound, ErrConflict))
}

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewCustomError(ErrPersonExists, "duplicate registration attempt")

	assert.True(t, errors.Is(err, ErrPersonExists))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "duplicate registration attempt", err.Error())
}

func TestCustomErrorDetails(t *testing.T) {
	err := NewCustomError(ErrInvalidTransition, "transition rejected").
		WithDetails(map[string]interface{}{"current_status": "archived"})

	details := DetailsOf(err)
	require.NotNil(t, details)
	assert.Equal(t, "archived", details["current_status"])

	wrapped := fmt.Errorf("request failed: %w", err)
	assert.Equal(t, details, DetailsOf(wrapped))

	assert.Nil(t, DetailsOf(errors.New("plain")))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("entry year out of range")
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "entry year out of range", err.Error())
}
