package models

import (
	"time"

	"github.com/sdemirtas/registrar/internal/pkg/lifecycle"
)

// StatusHistoryEntry is one append-only audit record of an accepted status
// transition. Entries are written in the same transaction as the status
// update and are never mutated or deleted afterwards.
type StatusHistoryEntry struct {
	ID        int64            `json:"id" db:"id"`
	RoleType  RoleType         `json:"roleType" db:"role_type"`
	RoleID    int64            `json:"roleId" db:"role_id"`
	OldStatus lifecycle.Status `json:"oldStatus" db:"old_status"`
	NewStatus lifecycle.Status `json:"newStatus" db:"new_status"`
	ChangedBy string           `json:"changedBy" db:"changed_by"`
	Reason    *string          `json:"reason,omitempty" db:"reason"`
	ChangedAt time.Time        `json:"changedAt" db:"changed_at"`
}
