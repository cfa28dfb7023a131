package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/dberrors"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
)

const personColumns = "id, first_name, last_name, date_of_birth, place_of_birth, nationality, gender, email, phone, created_at, updated_at"

// PersonRepository handles person database operations. Mutating methods take
// a db.Querier so the orchestrating service can run them inside a
// transaction; read methods go straight to the pool.
type PersonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(pool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPerson(row pgx.Row) (*models.Person, error) {
	var p models.Person
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.PlaceOfBirth,
		&p.Nationality, &p.Gender, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new person. The pre-insert duplicate read done by the
// caller is only a fast path; the unique constraints are the real guard, so
// constraint violations here map to the same conflict errors.
func (r *PersonRepository) Create(ctx context.Context, q db.Querier, person *models.Person) error {
	err := q.QueryRow(ctx, `
		INSERT INTO persons (first_name, last_name, date_of_birth, place_of_birth, nationality, gender, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		person.FirstName, person.LastName, person.DateOfBirth, person.PlaceOfBirth,
		person.Nationality, person.Gender, person.Email, person.Phone,
	).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "persons_identity_key") {
			logger.Warn().Str("firstName", person.FirstName).Str("lastName", person.LastName).Msg("Attempted to create duplicate person")
			return apperrors.ErrPersonExists
		}
		if dberrors.IsDuplicateConstraintError(err, "persons_email_key") {
			logger.Warn().Str("email", person.Email).Msg("Attempted to create person with duplicate email")
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("error creating person: %w", err)
	}

	return nil
}

// FindByNameAndDOB retrieves a person by the case-insensitive name + date of
// birth triple. Returns (nil, nil) when no such person exists.
func (r *PersonRepository) FindByNameAndDOB(ctx context.Context, q db.Querier, firstName, lastName string, dob time.Time) (*models.Person, error) {
	person, err := scanPerson(q.QueryRow(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE lower(first_name) = lower($1)
		  AND lower(last_name) = lower($2)
		  AND date_of_birth = $3`,
		firstName, lastName, dob))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving person by name and date of birth: %w", err)
	}

	return person, nil
}

// FindByEmail retrieves a person by email. Returns (nil, nil) when absent.
func (r *PersonRepository) FindByEmail(ctx context.Context, email string) (*models.Person, error) {
	person, err := scanPerson(r.db.QueryRow(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE email = $1`,
		email))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving person by email: %w", err)
	}

	return person, nil
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, q db.Querier, id int64) (*models.Person, error) {
	person, err := scanPerson(q.QueryRow(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE id = $1`,
		id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, fmt.Errorf("error retrieving person: %w", err)
	}

	return person, nil
}

// Exists checks whether a person row exists for the given ID.
func (r *PersonRepository) Exists(ctx context.Context, q db.Querier, id int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM persons WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking person existence: %w", err)
	}
	return exists, nil
}

// Update applies a partial update and returns the updated person.
func (r *PersonRepository) Update(ctx context.Context, id int64, update models.PersonUpdate) (*models.Person, error) {
	set := map[string]interface{}{"updated_at": squirrel.Expr("now()")}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.DateOfBirth != nil {
		set["date_of_birth"] = *update.DateOfBirth
	}
	if update.PlaceOfBirth != nil {
		set["place_of_birth"] = *update.PlaceOfBirth
	}
	if update.Nationality != nil {
		set["nationality"] = *update.Nationality
	}
	if update.Gender != nil {
		set["gender"] = string(*update.Gender)
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}

	sql, args, err := r.sb.Update("persons").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + personColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update person query: %w", err)
	}

	person, err := scanPerson(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "persons_identity_key") {
			return nil, apperrors.ErrPersonExists
		}
		if dberrors.IsDuplicateConstraintError(err, "persons_email_key") {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("error updating person: %w", err)
	}

	return person, nil
}

// Delete removes a person row. Role rows go with it via ON DELETE CASCADE;
// the caller is responsible for removing audit history in the same
// transaction before calling this.
func (r *PersonRepository) Delete(ctx context.Context, q db.Querier, id int64) error {
	tag, err := q.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}

	logger.Info().Int64("personID", id).Msg("Person deleted")
	return nil
}

// List retrieves persons decorated with role presence flags, optionally
// narrowed by a free-text needle (name or email) and a role type the person
// must hold. Ordering is by last then first name.
func (r *PersonRepository) List(ctx context.Context, search string, roleType models.RoleType) ([]*models.PersonSummary, error) {
	query := r.sb.Select(
		"p.id", "p.first_name", "p.last_name", "p.date_of_birth", "p.place_of_birth",
		"p.nationality", "p.gender", "p.email", "p.phone", "p.created_at", "p.updated_at",
		"EXISTS(SELECT 1 FROM students s WHERE s.person_id = p.id) AS is_student",
		"EXISTS(SELECT 1 FROM faculty_members f WHERE f.person_id = p.id) AS is_faculty",
		"EXISTS(SELECT 1 FROM staff_members sm WHERE sm.person_id = p.id) AS is_staff",
	).From("persons p")

	if search != "" {
		needle := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"p.first_name": needle},
			squirrel.ILike{"p.last_name": needle},
			squirrel.ILike{"p.email": needle},
		})
	}

	switch roleType {
	case models.RoleStudent:
		query = query.Where("EXISTS(SELECT 1 FROM students s WHERE s.person_id = p.id)")
	case models.RoleFaculty:
		query = query.Where("EXISTS(SELECT 1 FROM faculty_members f WHERE f.person_id = p.id)")
	case models.RoleStaff:
		query = query.Where("EXISTS(SELECT 1 FROM staff_members sm WHERE sm.person_id = p.id)")
	}

	sql, args, err := query.OrderBy("p.last_name ASC", "p.first_name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list persons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing persons: %w", err)
	}
	defer rows.Close()

	var summaries []*models.PersonSummary
	for rows.Next() {
		var s models.PersonSummary
		err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.DateOfBirth, &s.PlaceOfBirth,
			&s.Nationality, &s.Gender, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt,
			&s.IsStudent, &s.IsFaculty, &s.IsStaff)
		if err != nil {
			return nil, fmt.Errorf("error scanning person row: %w", err)
		}
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}

	return summaries, nil
}

// Count returns the total number of persons.
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting persons: %w", err)
	}
	return count, nil
}
