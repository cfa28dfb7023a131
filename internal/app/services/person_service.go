package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/app/repositories"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
)

// PersonService handles person-level operations: profile updates, cascading
// deletion and the person-with-roles aggregation.
type PersonService struct {
	database *db.PostgresDB
	repos    *repositories.Repositories
}

// NewPersonService creates a new person service instance
func NewPersonService(database *db.PostgresDB, repos *repositories.Repositories) *PersonService {
	return &PersonService{
		database: database,
		repos:    repos,
	}
}

// Create inserts a person without any role instance. The duplicate
// pre-check on name and date of birth is a fast path; the identity index
// catches whatever races past it.
func (s *PersonService) Create(ctx context.Context, person *models.Person) (*models.Person, error) {
	if err := validatePerson(person); err != nil {
		return nil, err
	}

	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		existing, err := s.repos.Person.FindByNameAndDOB(ctx, tx, person.FirstName, person.LastName, person.DateOfBirth)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewCustomError(apperrors.ErrPersonExists, "A person with this name and date of birth already exists").
				WithDetails(map[string]interface{}{"existing_id": existing.ID})
		}
		return s.repos.Person.Create(ctx, tx, person)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("personID", person.ID).Msg("Person created without role")
	return person, nil
}

// List retrieves persons with role presence flags.
func (s *PersonService) List(ctx context.Context, search string, roleType models.RoleType) ([]*models.PersonSummary, error) {
	return s.repos.Person.List(ctx, search, roleType)
}

// Get retrieves a person with every role instance attached to them. The
// per-role-type sub-queries run concurrently; each reflects its own read
// snapshot, with no ordering guarantee between them.
func (s *PersonService) Get(ctx context.Context, id int64) (*models.PersonWithRoles, error) {
	person, err := s.repos.Person.GetByID(ctx, s.database.Pool, id)
	if err != nil {
		return nil, err
	}

	result := &models.PersonWithRoles{
		Person: *person,
		Roles:  make(map[models.RoleType][]*models.RoleInstance, len(s.repos.Roles)),
	}

	g, gctx := errgroup.WithContext(ctx)
	lists := make(map[models.RoleType]*[]*models.RoleInstance, len(s.repos.Roles))
	for roleType, repo := range s.repos.Roles {
		slot := new([]*models.RoleInstance)
		lists[roleType] = slot
		repo := repo
		g.Go(func() error {
			roles, err := repo.ListByPerson(gctx, s.database.Pool, id)
			if err != nil {
				return err
			}
			*slot = roles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for roleType, slot := range lists {
		result.Roles[roleType] = *slot
	}

	return result, nil
}

// Update applies a partial update to a person's profile.
func (s *PersonService) Update(ctx context.Context, id int64, update models.PersonUpdate) (*models.Person, error) {
	return s.repos.Person.Update(ctx, id, update)
}

// Delete removes a person, all of their role instances and the role
// instances' audit history, in one transaction. Role rows die with their
// person via the cascade; history rows are removed explicitly first since
// they reference role rows only by type and id.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, repo := range s.repos.Roles {
			if err := s.repos.History.DeleteForPersonRoles(ctx, tx, repo.Spec(), id); err != nil {
				return err
			}
		}
		return s.repos.Person.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("personID", id).Msg("Person and all attached roles removed")
	return nil
}
