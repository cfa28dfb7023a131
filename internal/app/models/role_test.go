package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

func TestIdentifierPrefix(t *testing.T) {
	assert.Equal(t, "STU", IdentifierPrefix(RoleStudent, CategoryUndergraduate))
	assert.Equal(t, "STU", IdentifierPrefix(RoleStudent, CategoryContinuingEducation))
	assert.Equal(t, "STU", IdentifierPrefix(RoleStudent, CategoryInternationalExchange))
	assert.Equal(t, "PHD", IdentifierPrefix(RoleStudent, CategoryPhdCandidate))
	assert.Equal(t, "FAC", IdentifierPrefix(RoleFaculty, ""))
	assert.Equal(t, "STF", IdentifierPrefix(RoleStaff, ""))
	assert.Equal(t, "", IdentifierPrefix(RoleType("visitor"), ""))
}

func TestFacultyPrefixIgnoresCategory(t *testing.T) {
	assert.Equal(t, "FAC", IdentifierPrefix(RoleFaculty, CategoryPhdCandidate))
	assert.Equal(t, "STF", IdentifierPrefix(RoleStaff, CategoryPhdCandidate))
}

func TestParseRoleType(t *testing.T) {
	for _, roleType := range RoleTypes() {
		parsed, err := ParseRoleType(string(roleType))
		require.NoError(t, err)
		assert.Equal(t, roleType, parsed)
	}

	_, err := ParseRoleType("visitor")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownRoleType))

	_, err = ParseRoleType("")
	assert.Error(t, err)
}
