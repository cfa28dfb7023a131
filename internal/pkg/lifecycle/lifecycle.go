// Package lifecycle defines the status state machine shared by every role
// type. The transition table is the single source of truth: the transition
// service validates against it and the API exposes it so clients can present
// legal next states.
package lifecycle

import (
	"fmt"

	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
)

// Status is a role instance lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
	StatusArchived  Status = "archived"
)

// Initial is the state every role instance is created in.
const Initial = StatusPending

// transitions maps each state to the set of states it may move to.
// archived is terminal and has no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:   {StatusActive},
	StatusActive:    {StatusSuspended, StatusInactive},
	StatusSuspended: {StatusActive},
	StatusInactive:  {StatusArchived},
	StatusArchived:  {},
}

// All lists every valid status value.
func All() []Status {
	return []Status{StatusPending, StatusActive, StatusSuspended, StatusInactive, StatusArchived}
}

// Parse validates a raw status string.
func Parse(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := transitions[s]; !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownStatus, raw)
	}
	return s, nil
}

// AllowedNext returns the legal target states from the given state.
func AllowedNext(from Status) []Status {
	next := transitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Check validates from -> to and returns a descriptive error carrying the
// current state and the legal next states when the transition is rejected.
func Check(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}

	allowed := AllowedNext(from)
	allowedRaw := make([]string, len(allowed))
	for i, s := range allowed {
		allowedRaw[i] = string(s)
	}

	return apperrors.NewCustomError(
		apperrors.ErrInvalidTransition,
		fmt.Sprintf("transition from '%s' to '%s' is not allowed", from, to),
	).WithDetails(map[string]interface{}{
		"current_status": string(from),
		"allowed_next":   allowedRaw,
	})
}
