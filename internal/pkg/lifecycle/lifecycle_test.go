package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusActive},
		{StatusActive, StatusSuspended},
		{StatusActive, StatusInactive},
		{StatusSuspended, StatusActive},
		{StatusInactive, StatusArchived},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	for _, from := range All() {
		for _, to := range All() {
			legal := false
			for _, tc := range allowed {
				if tc.from == from && tc.to == to {
					legal = true
				}
			}
			assert.Equal(t, legal, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestArchivedIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusArchived))
	assert.Empty(t, AllowedNext(StatusArchived))

	for _, s := range All() {
		if s == StatusArchived {
			continue
		}
		assert.False(t, IsTerminal(s), "%s should have outgoing transitions", s)
	}
}

func TestNoSelfTransitions(t *testing.T) {
	for _, s := range All() {
		assert.False(t, CanTransition(s, s), "%s -> %s", s, s)
	}
}

func TestParse(t *testing.T) {
	for _, s := range All() {
		parsed, err := Parse(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := Parse("frozen")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownStatus))

	_, err = Parse("Active")
	assert.Error(t, err)
}

func TestCheckRejectionDetails(t *testing.T) {
	err := Check(StatusArchived, StatusActive)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "archived", customErr.Details["current_status"])
	assert.Empty(t, customErr.Details["allowed_next"])

	err = Check(StatusActive, StatusArchived)
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "active", customErr.Details["current_status"])
	assert.ElementsMatch(t, []string{"suspended", "inactive"}, customErr.Details["allowed_next"])
}

func TestCheckAcceptsLegalTransitions(t *testing.T) {
	assert.NoError(t, Check(StatusPending, StatusActive))
	assert.NoError(t, Check(StatusSuspended, StatusActive))
}

func TestInitial(t *testing.T) {
	assert.Equal(t, StatusPending, Initial)
}
