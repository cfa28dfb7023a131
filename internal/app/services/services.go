package services

import (
	"github.com/sdemirtas/registrar/internal/app/repositories"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/metrics"
)

// Services bundles all service instances.
type Services struct {
	Enrollment *EnrollmentService
	Transition *TransitionService
	Person     *PersonService
	Query      *QueryService
}

// NewServices wires all services over the shared database handle and
// repositories.
func NewServices(database *db.PostgresDB, repos *repositories.Repositories, m *metrics.Metrics) *Services {
	return &Services{
		Enrollment: NewEnrollmentService(database, repos, m),
		Transition: NewTransitionService(database, repos, m),
		Person:     NewPersonService(database, repos),
		Query:      NewQueryService(repos),
	}
}
