package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/app/repositories"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/identifier"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
	"github.com/sdemirtas/registrar/internal/pkg/metrics"
	"github.com/sdemirtas/registrar/internal/pkg/validation"
)

// EnrollmentService is the lifecycle orchestrator: it composes the person
// store, the identifier generator and the role store into the two creation
// operations, each executed as a single transaction. It holds no state of
// its own.
type EnrollmentService struct {
	database *db.PostgresDB
	repos    *repositories.Repositories
	metrics  *metrics.Metrics
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(database *db.PostgresDB, repos *repositories.Repositories, m *metrics.Metrics) *EnrollmentService {
	return &EnrollmentService{
		database: database,
		repos:    repos,
		metrics:  m,
	}
}

func validatePerson(person *models.Person) error {
	if person == nil {
		return apperrors.NewValidationError("person fields are required")
	}
	if strings.TrimSpace(person.FirstName) == "" {
		return apperrors.NewValidationError("first name cannot be empty")
	}
	if strings.TrimSpace(person.LastName) == "" {
		return apperrors.NewValidationError("last name cannot be empty")
	}
	if person.DateOfBirth.IsZero() {
		return apperrors.NewValidationError("date of birth is required")
	}
	if !person.DateOfBirth.Before(time.Now()) {
		return apperrors.NewValidationError("date of birth cannot be in the future")
	}
	if strings.TrimSpace(person.Email) == "" {
		return apperrors.NewValidationError("email is required")
	}
	switch person.Gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		return apperrors.NewValidationError("gender must be male, female or other")
	}
	return nil
}

func normalizeRole(role *models.RoleInstance, roleType models.RoleType) error {
	if role == nil {
		return apperrors.NewValidationError("role fields are required")
	}
	role.Type = roleType
	if role.EntryYear == 0 {
		role.EntryYear = time.Now().Year()
	}
	if role.EntryYear < 1900 || role.EntryYear > 2100 {
		return apperrors.NewValidationError("entry year out of range")
	}
	if roleType == models.RoleStudent {
		if role.Category == "" {
			role.Category = models.CategoryUndergraduate
		}
		if !validation.IsStudentCategory(role.Category) {
			return apperrors.NewValidationError(fmt.Sprintf("unknown student category %q", role.Category))
		}
	}
	return nil
}

// createRoleInstance generates an identifier and inserts the role row on the
// given transaction, retrying generation a bounded number of times when the
// identifier collides. The role table's unique constraint is the final
// arbiter; the sequence upsert only makes collisions unlikely.
func (s *EnrollmentService) createRoleInstance(ctx context.Context, tx pgx.Tx, repo *repositories.RoleRepository, role *models.RoleInstance) error {
	prefix := models.IdentifierPrefix(role.Type, role.Category)
	if prefix == "" {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, role.Type)
	}

	for attempt := 0; attempt <= identifier.MaxRetries; attempt++ {
		if attempt > 0 {
			s.metrics.IdentifierRetries.Inc()
		}

		// Generate runs on the enclosing transaction so the sequence
		// increment survives a collision rollback; otherwise every retry
		// would reproduce the same occupied identifier.
		id, err := s.repos.Identifier.Generate(ctx, tx, prefix, role.EntryYear)
		if err != nil {
			return err
		}
		role.Identifier = id

		// The insert itself runs under a savepoint (Begin on a pgx.Tx nests
		// as one): a unique violation aborts the current statement scope in
		// Postgres, and without the savepoint the enclosing transaction
		// would be unusable for the retry.
		sp, err := tx.Begin(ctx)
		if err != nil {
			return fmt.Errorf("error opening savepoint for role insert: %w", err)
		}

		err = repo.Create(ctx, sp, role)
		if err == nil {
			return sp.Commit(ctx)
		}

		_ = sp.Rollback(ctx)
		if !errors.Is(err, apperrors.ErrIdentifierExists) {
			return err
		}

		logger.Warn().Str("identifier", id).Int("attempt", attempt+1).Msg("Retrying identifier generation after collision")
	}

	return apperrors.ErrIdentifierExhausted
}

// EnrollNew creates a person and their first role instance atomically. A
// person matching the name + date of birth triple aborts the whole
// operation with a conflict carrying the existing person's id; any later
// failure rolls back the person insert too, so a role never exists without
// its owning person and a failed role insert never leaves an orphaned
// person row.
func (s *EnrollmentService) EnrollNew(ctx context.Context, roleType models.RoleType, person *models.Person, role *models.RoleInstance) (*models.RoleView, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}
	if err := validatePerson(person); err != nil {
		return nil, err
	}
	if err := normalizeRole(role, roleType); err != nil {
		return nil, err
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Fast-path duplicate rejection; the unique index is what actually
		// guards against a concurrent create.
		existing, err := s.repos.Person.FindByNameAndDOB(ctx, tx, person.FirstName, person.LastName, person.DateOfBirth)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewCustomError(
				apperrors.ErrPersonExists,
				"a person with this name and date of birth already exists",
			).WithDetails(map[string]interface{}{"existing_id": existing.ID})
		}

		if err := s.repos.Person.Create(ctx, tx, person); err != nil {
			return err
		}

		role.PersonID = person.ID
		return s.createRoleInstance(ctx, tx, repo, role)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.EnrollmentsTotal.WithLabelValues(string(roleType)).Inc()
	logger.Info().Str("identifier", role.Identifier).Int64("personID", person.ID).Str("roleType", string(roleType)).Msg("Enrollment completed")

	return composeView(person, role), nil
}

// AttachRole attaches a new role instance to an existing person, with the
// same identifier generation and atomicity rules as EnrollNew.
func (s *EnrollmentService) AttachRole(ctx context.Context, roleType models.RoleType, personID int64, role *models.RoleInstance) (*models.RoleView, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}
	if err := normalizeRole(role, roleType); err != nil {
		return nil, err
	}

	var person *models.Person
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		person, err = s.repos.Person.GetByID(ctx, tx, personID)
		if err != nil {
			return err
		}

		role.PersonID = personID
		return s.createRoleInstance(ctx, tx, repo, role)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.EnrollmentsTotal.WithLabelValues(string(roleType)).Inc()
	logger.Info().Str("identifier", role.Identifier).Int64("personID", personID).Str("roleType", string(roleType)).Msg("Role attached")

	return composeView(person, role), nil
}

func composeView(person *models.Person, role *models.RoleInstance) *models.RoleView {
	return &models.RoleView{
		RoleInstance: *role,
		FirstName:    person.FirstName,
		LastName:     person.LastName,
		Email:        person.Email,
		PlaceOfBirth: person.PlaceOfBirth,
		Nationality:  person.Nationality,
	}
}
