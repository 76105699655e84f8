package calendar

import (
	"github.com/Asurkatha/calctl/internal/models"
)

// findConflicts returns every event in events whose [start, end) interval
// intersects the candidate's. excludeID skips one event, for
// edit-in-place checks against the event's own stored row. Touching
// endpoints (one event ending exactly when another starts) do not
// conflict. The check never mutates anything.
func (e *Engine) findConflicts(events []models.Event, candidate *models.Event, excludeID string) ([]models.Event, error) {
	candStart, err := candidate.Start()
	if err != nil {
		return nil, err
	}
	candEnd, err := candidate.End()
	if err != nil {
		return nil, err
	}

	var conflicts []models.Event
	for i := range events {
		other := &events[i]
		if excludeID != "" && other.ID == excludeID {
			continue
		}

		otherStart, err := other.Start()
		if err != nil {
			e.log.Warn().Err(err).Str("event_id", other.ID).Msg("skipping event with unparseable time")
			continue
		}
		otherEnd := otherStart.Add(minuteDuration(other.Duration))

		if candStart.Before(otherEnd) && candEnd.After(otherStart) {
			conflicts = append(conflicts, *other)
		}
	}
	return conflicts, nil
}
