package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/app/repositories"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/lifecycle"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
	"github.com/sdemirtas/registrar/internal/pkg/metrics"
)

// defaultActor is recorded when the caller does not identify themselves.
const defaultActor = "system"

// TransitionResult reports an accepted status change.
type TransitionResult struct {
	Identifier string           `json:"identifier"`
	OldStatus  lifecycle.Status `json:"oldStatus"`
	NewStatus  lifecycle.Status `json:"newStatus"`
}

// TransitionService validates and performs status changes against the
// lifecycle transition table. The status update and the audit write happen
// in one transaction; the row lock taken while reading the current status
// serializes concurrent transitions on the same role instance.
type TransitionService struct {
	database *db.PostgresDB
	repos    *repositories.Repositories
	metrics  *metrics.Metrics
}

// NewTransitionService creates a new transition service instance
func NewTransitionService(database *db.PostgresDB, repos *repositories.Repositories, m *metrics.Metrics) *TransitionService {
	return &TransitionService{
		database: database,
		repos:    repos,
		metrics:  m,
	}
}

// Transition moves the role instance identified by identifier to
// requestedStatus. Rejections carry the current status and the legal next
// states; accepted transitions append exactly one history entry.
func (s *TransitionService) Transition(ctx context.Context, roleType models.RoleType, identifier, requestedStatus, actor, reason string) (*TransitionResult, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}

	target, err := lifecycle.Parse(requestedStatus)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error())
	}

	if strings.TrimSpace(actor) == "" {
		actor = defaultActor
	}

	var result *TransitionResult
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		roleID, current, err := repo.CurrentStatusForUpdate(ctx, tx, identifier)
		if err != nil {
			return err
		}

		if err := lifecycle.Check(current, target); err != nil {
			s.metrics.TransitionsRejected.WithLabelValues(string(current)).Inc()
			return err
		}

		if err := repo.SetStatus(ctx, tx, roleID, target); err != nil {
			return err
		}

		var reasonPtr *string
		if strings.TrimSpace(reason) != "" {
			reasonPtr = &reason
		}

		entry := &models.StatusHistoryEntry{
			RoleType:  roleType,
			RoleID:    roleID,
			OldStatus: current,
			NewStatus: target,
			ChangedBy: actor,
			Reason:    reasonPtr,
		}
		if err := s.repos.History.Append(ctx, tx, entry); err != nil {
			return err
		}

		result = &TransitionResult{
			Identifier: identifier,
			OldStatus:  current,
			NewStatus:  target,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TransitionsTotal.WithLabelValues(string(result.OldStatus), string(result.NewStatus)).Inc()
	logger.Info().
		Str("identifier", identifier).
		Str("from", string(result.OldStatus)).
		Str("to", string(result.NewStatus)).
		Str("actor", actor).
		Msg("Status transition accepted")

	return result, nil
}

// AllowedNext exposes the legal next states for a role instance's current
// status, for callers that present transition choices.
func (s *TransitionService) AllowedNext(ctx context.Context, roleType models.RoleType, identifier string) (lifecycle.Status, []lifecycle.Status, error) {
	repo, ok := s.repos.Role(roleType)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownRoleType, roleType)
	}

	view, err := repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return "", nil, err
	}

	return view.Status, lifecycle.AllowedNext(view.Status), nil
}
