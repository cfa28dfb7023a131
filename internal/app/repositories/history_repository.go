package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/db"
)

// HistoryRepository handles the append-only status history table. Entries
// are written only through Append, from the same transaction that performs
// the status update, and are never modified afterwards.
type HistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{db: pool}
}

// Append writes one audit entry for an accepted transition.
func (r *HistoryRepository) Append(ctx context.Context, q db.Querier, entry *models.StatusHistoryEntry) error {
	err := q.QueryRow(ctx, `
		INSERT INTO status_history (role_type, role_id, old_status, new_status, changed_by, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, changed_at`,
		string(entry.RoleType), entry.RoleID, string(entry.OldStatus), string(entry.NewStatus),
		entry.ChangedBy, entry.Reason,
	).Scan(&entry.ID, &entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("error appending status history: %w", err)
	}
	return nil
}

// ListForRole retrieves a role instance's history, newest first.
func (r *HistoryRepository) ListForRole(ctx context.Context, roleType models.RoleType, roleID int64) ([]*models.StatusHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, role_type, role_id, old_status, new_status, changed_by, reason, changed_at
		FROM status_history
		WHERE role_type = $1 AND role_id = $2
		ORDER BY changed_at DESC, id DESC`,
		string(roleType), roleID)
	if err != nil {
		return nil, fmt.Errorf("error listing status history: %w", err)
	}
	defer rows.Close()

	var entries []*models.StatusHistoryEntry
	for rows.Next() {
		var e models.StatusHistoryEntry
		if err := rows.Scan(&e.ID, &e.RoleType, &e.RoleID, &e.OldStatus, &e.NewStatus, &e.ChangedBy, &e.Reason, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("error scanning status history row: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status history rows: %w", err)
	}

	return entries, nil
}

// DeleteForPersonRoles removes the history of every role instance of the
// given spec's type owned by the person. Called only from the person
// deletion transaction, right before the person row (and with it the role
// rows) is deleted.
func (r *HistoryRepository) DeleteForPersonRoles(ctx context.Context, q db.Querier, spec RoleSpec, personID int64) error {
	sql := fmt.Sprintf(`
		DELETE FROM status_history
		WHERE role_type = $1
		  AND role_id IN (SELECT id FROM %s WHERE person_id = $2)`, spec.Table)
	if _, err := q.Exec(ctx, sql, string(spec.Type), personID); err != nil {
		return fmt.Errorf("error deleting status history for person %d: %w", personID, err)
	}
	return nil
}
