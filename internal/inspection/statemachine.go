// internal/inspection/statemachine.go
package inspection

import (
	"fmt"

	"propcheck/internal/models"
)

// InvalidTransitionError reports a status change the transition table does
// not allow. The legacy behavior was a silent overwrite; rejecting with a
// typed error lets callers distinguish it from persistence failures.
type InvalidTransitionError struct {
	From models.InspectionStatus
	To   models.InspectionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// transitions is the explicit status table. Forward-only under normal flow,
// with cancelled reachable from any non-terminal state. completed and
// cancelled are terminal.
var transitions = map[models.InspectionStatus][]models.InspectionStatus{
	models.StatusScheduled:  {models.StatusPending, models.StatusInProgress, models.StatusCancelled},
	models.StatusPending:    {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to models.InspectionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to, returning an *InvalidTransitionError when
// the table forbids it.
func Transition(from, to models.InspectionStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
