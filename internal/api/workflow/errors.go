package workflow

import (
	"fmt"

	"studio/internal/api/models"
)

// InvalidTransitionError is returned when the requested status is not
// reachable from the job's current status. The job is left untouched.
type InvalidTransitionError struct {
	From models.JobStatus
	To   models.JobStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid job transition from %q to %q", e.From, e.To)
}
