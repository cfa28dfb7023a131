package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := pgError("23505", "students_identifier_key")
	assert.True(t, IsDuplicateConstraintError(err, "students_identifier_key"))
	assert.False(t, IsDuplicateConstraintError(err, "persons_email_key"))

	wrapped := fmt.Errorf("insert failed: %w", err)
	assert.True(t, IsDuplicateConstraintError(wrapped, "students_identifier_key"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError("23505", "persons_identity_key")))
	assert.False(t, IsUniqueViolation(pgError("23503", "students_person_id_fkey")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(pgError("23503", "students_person_id_fkey")))
	assert.False(t, IsForeignKeyViolation(pgError("23505", "persons_email_key")))
	assert.False(t, IsForeignKeyViolation(nil))
}
