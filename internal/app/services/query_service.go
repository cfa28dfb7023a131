package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/app/repositories"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/validation"
)

// QueryService is the read-only aggregation layer over the person and role
// stores. It never mutates state; every result reflects one consistent read
// snapshot per issued query.
type QueryService struct {
	repos *repositories.Repositories
}

// NewQueryService creates a new query service instance
func NewQueryService(repos *repositories.Repositories) *QueryService {
	return &QueryService{repos: repos}
}

// ListRoles lists role views of one type matching the filters.
func (s *QueryService) ListRoles(ctx context.Context, roleType models.RoleType, filters models.RoleFilters) ([]*models.RoleView, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}
	return repo.ListByFilters(ctx, filters)
}

// GetRole retrieves one role view by identifier.
func (s *QueryService) GetRole(ctx context.Context, roleType models.RoleType, identifier string) (*models.RoleView, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}
	return repo.FindByIdentifier(ctx, identifier)
}

// UpdateRoleFields applies a partial update to a role's descriptive fields.
// Status and identifier are out of reach here.
func (s *QueryService) UpdateRoleFields(ctx context.Context, roleType models.RoleType, identifier string, update models.RoleUpdate) (*models.RoleView, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}
	// The student category column is an enum; reject unknown values here
	// instead of letting the update blow up at the database.
	if update.Category != nil && roleType == models.RoleStudent && !validation.IsStudentCategory(*update.Category) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown student category %q", *update.Category))
	}
	return repo.UpdateFields(ctx, identifier, update)
}

// SearchResult buckets matches per role type.
type SearchResult struct {
	Query   string                                 `json:"query"`
	Total   int                                    `json:"total"`
	Results map[models.RoleType][]*models.RoleView `json:"results"`
}

// Search runs the free-text search across role types, one query per type.
// When roleType is non-empty only that type is searched.
func (s *QueryService) Search(ctx context.Context, text string, roleType models.RoleType, status string, year int) (*SearchResult, error) {
	types := models.RoleTypes()
	if roleType != "" {
		if _, ok := s.repos.Role(roleType); !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
		}
		types = []models.RoleType{roleType}
	}

	result := &SearchResult{
		Query:   text,
		Results: make(map[models.RoleType][]*models.RoleView, len(types)),
	}

	filters := models.RoleFilters{
		Text:      text,
		Status:    status,
		EntryYear: year,
	}

	for _, t := range types {
		repo, _ := s.repos.Role(t)
		views, err := repo.ListByFilters(ctx, filters)
		if err != nil {
			return nil, err
		}
		result.Results[t] = views
		result.Total += len(views)
	}

	return result, nil
}

// Stats reports role counts by status per role type plus the total number
// of persons. The sub-queries run concurrently.
type Stats struct {
	TotalPersons int64                                `json:"totalPersons"`
	ByRoleType   map[models.RoleType]map[string]int64 `json:"byRoleType"`
}

// GetStats computes the registry statistics.
func (s *QueryService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByRoleType: make(map[models.RoleType]map[string]int64, len(s.repos.Roles)),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.repos.Person.Count(gctx)
		if err != nil {
			return err
		}
		stats.TotalPersons = count
		return nil
	})

	counts := make(map[models.RoleType]*map[string]int64, len(s.repos.Roles))
	for roleType, repo := range s.repos.Roles {
		slot := new(map[string]int64)
		counts[roleType] = slot
		repo := repo
		g.Go(func() error {
			byStatus, err := repo.CountByStatus(gctx)
			if err != nil {
				return err
			}
			*slot = byStatus
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for roleType, slot := range counts {
		stats.ByRoleType[roleType] = *slot
	}

	return stats, nil
}

// GetHistory retrieves a role instance's status history, newest first.
func (s *QueryService) GetHistory(ctx context.Context, roleType models.RoleType, identifier string) ([]*models.StatusHistoryEntry, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}

	view, err := repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return s.repos.History.ListForRole(ctx, roleType, view.ID)
}
