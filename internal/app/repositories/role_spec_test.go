package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdemirtas/registrar/internal/app/models"
)

func TestRoleSpecsCoverAllTypes(t *testing.T) {
	for _, roleType := range models.RoleTypes() {
		spec, ok := roleSpecs[roleType]
		require.True(t, ok, string(roleType))
		assert.Equal(t, roleType, spec.Type)
		assert.NotEmpty(t, spec.Table)
		assert.NotEmpty(t, spec.AttrColumns)
	}
}

func TestAttrValuesMatchColumnCount(t *testing.T) {
	role := &models.RoleInstance{}
	for _, roleType := range models.RoleTypes() {
		spec := roleSpecs[roleType]
		assert.Len(t, spec.attrValues(role), len(spec.AttrColumns), string(roleType))

		scanned := &models.RoleInstance{}
		assert.Len(t, spec.attrScanTargets(scanned), len(spec.AttrColumns), string(roleType))
	}
}

func TestUpdateSetWhitelistsColumnsPerType(t *testing.T) {
	major := "Data Science"
	title := "Professor"
	unit := "Library"
	update := models.RoleUpdate{Major: &major, Title: &title, Unit: &unit}

	studentSet := roleSpecs[models.RoleStudent].updateSet(update)
	assert.Equal(t, map[string]interface{}{"major": "Data Science"}, studentSet)

	facultySet := roleSpecs[models.RoleFaculty].updateSet(update)
	assert.Equal(t, map[string]interface{}{"title": "Professor"}, facultySet)

	staffSet := roleSpecs[models.RoleStaff].updateSet(update)
	assert.Equal(t, map[string]interface{}{"unit": "Library"}, staffSet)
}

func TestUpdateSetCategoryAppliesToAll(t *testing.T) {
	category := "continuing_education"
	update := models.RoleUpdate{Category: &category}

	for _, roleType := range models.RoleTypes() {
		set := roleSpecs[roleType].updateSet(update)
		assert.Equal(t, "continuing_education", set["category"], string(roleType))
	}
}

func TestUpdateSetEmptyUpdate(t *testing.T) {
	assert.Empty(t, roleSpecs[models.RoleStudent].updateSet(models.RoleUpdate{}))
}
