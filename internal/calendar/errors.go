package calendar

import (
	"fmt"
	"strings"

	"github.com/Asurkatha/calctl/internal/models"
)

// ValidationError reports input rejected before any side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports that an add or edit would overlap existing
// events. It carries the conflicting events so callers can render them.
type ConflictError struct {
	Conflicts []models.Event
	// Editing reflects which operation was rejected; it only changes
	// the message wording.
	Editing bool
}

func (e *ConflictError) Error() string {
	details := make([]string, 0, len(e.Conflicts))
	for i := range e.Conflicts {
		c := &e.Conflicts[i]
		details = append(details, fmt.Sprintf("%q (%s)", c.Title, c.TimeRange()))
	}
	joined := strings.Join(details, ", ")
	if e.Editing {
		return fmt.Sprintf("edit would create conflicts with %s", joined)
	}
	return fmt.Sprintf("event conflicts with %s. Use --force to schedule anyway", joined)
}
