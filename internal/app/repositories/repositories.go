package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdemirtas/registrar/internal/app/models"
)

// Repositories bundles every repository over one shared pool. Roles holds
// one RoleRepository per role type, all driven by the same engine.
type Repositories struct {
	Person     *PersonRepository
	History    *HistoryRepository
	Identifier *IdentifierRepository
	Roles      map[models.RoleType]*RoleRepository
}

// NewRepositories creates all repositories using the provided database pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	roles := make(map[models.RoleType]*RoleRepository, len(roleSpecs))
	for roleType, spec := range roleSpecs {
		roles[roleType] = NewRoleRepository(pool, spec)
	}

	return &Repositories{
		Person:     NewPersonRepository(pool),
		History:    NewHistoryRepository(pool),
		Identifier: NewIdentifierRepository(pool),
		Roles:      roles,
	}
}

// Role returns the repository for a role type.
func (r *Repositories) Role(roleType models.RoleType) (*RoleRepository, bool) {
	repo, ok := r.Roles[roleType]
	return repo, ok
}
