package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

func validTestPerson() *models.Person {
	return &models.Person{
		FirstName:    "Ada",
		LastName:     "Kaya",
		DateOfBirth:  time.Date(1999, time.March, 14, 0, 0, 0, 0, time.UTC),
		PlaceOfBirth: "Izmir",
		Nationality:  "Turkish",
		Gender:       models.GenderFemale,
		Email:        "ada.kaya@example.edu",
	}
}

func TestValidatePerson(t *testing.T) {
	assert.NoError(t, validatePerson(validTestPerson()))
	assert.Error(t, validatePerson(nil))

	p := validTestPerson()
	p.FirstName = "  "
	assert.Error(t, validatePerson(p))

	p = validTestPerson()
	p.DateOfBirth = time.Time{}
	assert.Error(t, validatePerson(p))

	p = validTestPerson()
	p.DateOfBirth = time.Now().AddDate(1, 0, 0)
	err := validatePerson(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	p = validTestPerson()
	p.Gender = "unknown"
	assert.Error(t, validatePerson(p))

	p = validTestPerson()
	p.Email = ""
	assert.Error(t, validatePerson(p))
}

func TestNormalizeRoleDefaults(t *testing.T) {
	role := &models.RoleInstance{}
	require.NoError(t, normalizeRole(role, models.RoleStudent))

	assert.Equal(t, models.RoleStudent, role.Type)
	assert.Equal(t, time.Now().Year(), role.EntryYear)
	assert.Equal(t, models.CategoryUndergraduate, role.Category)
}

func TestNormalizeRoleKeepsExplicitValues(t *testing.T) {
	role := &models.RoleInstance{Category: models.CategoryPhdCandidate, EntryYear: 2022}
	require.NoError(t, normalizeRole(role, models.RoleStudent))

	assert.Equal(t, models.CategoryPhdCandidate, role.Category)
	assert.Equal(t, 2022, role.EntryYear)
}

func TestNormalizeRoleRejectsBadInput(t *testing.T) {
	assert.Error(t, normalizeRole(nil, models.RoleStudent))

	role := &models.RoleInstance{EntryYear: 1492}
	assert.Error(t, normalizeRole(role, models.RoleStudent))

	role = &models.RoleInstance{Category: "postdoc"}
	err := normalizeRole(role, models.RoleStudent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestNormalizeRoleFacultyIgnoresCategory(t *testing.T) {
	role := &models.RoleInstance{Category: "visiting"}
	require.NoError(t, normalizeRole(role, models.RoleFaculty))
	assert.Equal(t, "visiting", role.Category)
}
