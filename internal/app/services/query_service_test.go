package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/app/repositories"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

func TestUpdateRoleFieldsRejectsUnknownStudentCategory(t *testing.T) {
	svc := NewQueryService(repositories.NewRepositories(nil))

	category := "alumnus"
	update := models.RoleUpdate{Category: &category}

	_, err := svc.UpdateRoleFields(context.Background(), models.RoleStudent, "STU202400001", update)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestUpdateRoleFieldsRejectsUnknownRoleType(t *testing.T) {
	svc := NewQueryService(repositories.NewRepositories(nil))

	_, err := svc.UpdateRoleFields(context.Background(), "visitor", "STU202400001", models.RoleUpdate{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownRoleType))
}
