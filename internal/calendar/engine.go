// Package calendar implements the event store engine: add, list, show,
// edit, delete, search and agenda operations over a persisted, sorted
// event collection with conflict checking.
package calendar

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Asurkatha/calctl/internal/ident"
	"github.com/Asurkatha/calctl/internal/models"
	"github.com/Asurkatha/calctl/internal/store"
	"github.com/Asurkatha/calctl/internal/timeparse"
)

// Engine orchestrates all event operations. Every operation loads the
// full collection, computes in memory, and rewrites the collection on
// mutation; nothing is cached between calls.
type Engine struct {
	store    store.Store
	log      zerolog.Logger
	validate *validator.Validate

	// now is the clock used for "today", filters and timestamps.
	now func() time.Time
}

// New creates an engine over the given store.
func New(st store.Store, log zerolog.Logger) *Engine {
	return &Engine{
		store:    st,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

func minuteDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].StartTime < events[j].StartTime
	})
}

func trimOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Add validates, normalizes and persists a new event. Unless req.Force is
// set, any time overlap with an existing event aborts with a
// *ConflictError before anything is written.
func (e *Engine) Add(req models.AddRequest) (*models.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := e.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		field, reason := "request", err.Error()
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = strings.ToLower(verrs[0].Field())
			if verrs[0].Tag() == "gt" {
				reason = "must be positive"
			} else {
				reason = "is required"
			}
		}
		return nil, &ValidationError{Field: field, Reason: reason}
	}

	date, clock, err := timeparse.Normalize(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(events))
	for i := range events {
		existing[events[i].ID] = struct{}{}
	}
	id, err := ident.Unique(existing)
	if err != nil {
		return nil, err
	}

	now := e.now().Format(models.TimestampLayout)
	event := models.Event{
		ID:          id,
		Title:       req.Title,
		Date:        date,
		StartTime:   clock,
		Duration:    req.Duration,
		Location:    trimOptional(req.Location),
		Description: trimOptional(req.Description),
		Created:     now,
		Updated:     now,
	}

	if !req.Force {
		conflicts, err := e.findConflicts(events, &event, "")
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}
	}

	events = append(events, event)
	sortEvents(events)
	if err := e.store.Save(events); err != nil {
		return nil, err
	}

	e.log.Info().Str("event_id", event.ID).Str("date", event.Date).Msg("event added")
	return &event, nil
}

// List returns events matching the filter. Today wins over Week, which
// wins over the From/To bounds. With no filter at all, only events from
// today onward are returned.
func (e *Engine) List(filter models.ListFilter) ([]models.Event, error) {
	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	switch {
	case filter.Today:
		today := e.now().Format(timeparse.DateLayout)
		return filterEvents(events, func(ev *models.Event) bool {
			return ev.Date == today
		}), nil

	case filter.Week:
		start, end := timeparse.WeekBounds(e.now())
		return filterEvents(events, func(ev *models.Event) bool {
			return ev.Date >= start && ev.Date <= end
		}), nil

	default:
		if filter.From != "" {
			from, err := timeparse.NormalizeDate(filter.From)
			if err != nil {
				return nil, err
			}
			events = filterEvents(events, func(ev *models.Event) bool {
				return ev.Date >= from
			})
		}
		if filter.To != "" {
			to, err := timeparse.NormalizeDate(filter.To)
			if err != nil {
				return nil, err
			}
			events = filterEvents(events, func(ev *models.Event) bool {
				return ev.Date <= to
			})
		}
		if filter.From == "" && filter.To == "" {
			today := e.now().Format(timeparse.DateLayout)
			events = filterEvents(events, func(ev *models.Event) bool {
				return ev.Date >= today
			})
		}
		return events, nil
	}
}

func filterEvents(events []models.Event, keep func(*models.Event) bool) []models.Event {
	out := []models.Event{}
	for i := range events {
		if keep(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

// Show returns one event with its derived end time and any events it
// currently overlaps with. Overlaps here are informational, not an
// error: they can exist when events were force-added. Returns (nil, nil)
// when the id is unknown.
func (e *Engine) Show(id string) (*models.EventDetail, error) {
	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		endTime, err := events[i].EndClock()
		if err != nil {
			return nil, err
		}
		conflicts, err := e.findConflicts(events, &events[i], id)
		if err != nil {
			return nil, err
		}
		if conflicts == nil {
			conflicts = []models.Event{}
		}
		return &models.EventDetail{
			Event:     events[i],
			EndTime:   endTime,
			Conflicts: conflicts,
		}, nil
	}
	return nil, nil
}

// Edit applies a partial update to one event. Nil request fields leave
// the stored values untouched; provided strings are trimmed, and an
// empty result clears location/description. A conflict with any other
// event aborts the whole edit and the store is left unchanged. Returns
// (nil, nil) when the id is unknown.
func (e *Engine) Edit(id string, req models.EditRequest) (*models.Event, error) {
	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}

		updated := events[i]

		if req.Title != nil {
			updated.Title = strings.TrimSpace(*req.Title)
		}
		if req.Date != nil || req.Time != nil {
			newDate := updated.Date
			newTime := updated.StartTime
			if req.Date != nil && *req.Date != "" {
				newDate = *req.Date
			}
			if req.Time != nil && *req.Time != "" {
				newTime = *req.Time
			}
			date, clock, err := timeparse.Normalize(newDate, newTime)
			if err != nil {
				return nil, err
			}
			updated.Date = date
			updated.StartTime = clock
		}
		if req.Duration != nil {
			if *req.Duration <= 0 {
				return nil, &ValidationError{Field: "duration", Reason: "must be positive"}
			}
			updated.Duration = *req.Duration
		}
		if req.Location != nil {
			updated.Location = trimOptional(*req.Location)
		}
		if req.Description != nil {
			updated.Description = trimOptional(*req.Description)
		}

		conflicts, err := e.findConflicts(events, &updated, id)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts, Editing: true}
		}

		updated.Updated = e.nextUpdatedStamp(events[i].Updated)
		events[i] = updated
		sortEvents(events)
		if err := e.store.Save(events); err != nil {
			return nil, err
		}

		e.log.Info().Str("event_id", id).Msg("event updated")
		return &updated, nil
	}
	return nil, nil
}

// nextUpdatedStamp returns the current time, bumped just past prev when
// the clock has not advanced beyond it. Two edits inside the same
// instant stay distinguishably ordered without sleeping.
func (e *Engine) nextUpdatedStamp(prev string) string {
	now := e.now()
	if prevTime, err := time.Parse(models.TimestampLayout, prev); err == nil {
		if !now.After(prevTime) {
			now = prevTime.Add(time.Microsecond)
		}
	}
	return now.Format(models.TimestampLayout)
}

// Delete removes one event by id and persists the reduced collection.
// Returns (nil, nil) when the id is unknown.
func (e *Engine) Delete(id string) (*models.Event, error) {
	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		removed := events[i]
		events = append(events[:i], events[i+1:]...)
		if err := e.store.Save(events); err != nil {
			return nil, err
		}
		e.log.Info().Str("event_id", id).Msg("event deleted")
		return &removed, nil
	}
	return nil, nil
}

// DeleteByDate removes every event on the given date in one persisted
// operation and returns them. The store is only rewritten when something
// was actually removed.
func (e *Engine) DeleteByDate(dateStr string) ([]models.Event, error) {
	date, err := timeparse.NormalizeDate(dateStr)
	if err != nil {
		return nil, err
	}

	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	deleted := []models.Event{}
	remaining := []models.Event{}
	for i := range events {
		if events[i].Date == date {
			deleted = append(deleted, events[i])
		} else {
			remaining = append(remaining, events[i])
		}
	}

	if len(deleted) > 0 {
		if err := e.store.Save(remaining); err != nil {
			return nil, err
		}
		e.log.Info().Str("date", date).Int("count", len(deleted)).Msg("events deleted by date")
	}
	return deleted, nil
}

// Search returns events whose searchable text contains the query,
// case-insensitively. With titleOnly the title alone is searched;
// otherwise title, description and location are joined. A blank query
// matches nothing.
func (e *Engine) Search(query string, titleOnly bool) ([]models.Event, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Event{}, nil
	}

	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	return filterEvents(events, func(ev *models.Event) bool {
		var searchable string
		if titleOnly {
			searchable = ev.Title
		} else {
			parts := []string{ev.Title, deref(ev.Description), deref(ev.Location)}
			searchable = strings.Join(parts, " ")
		}
		return strings.Contains(strings.ToLower(searchable), q)
	}), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Agenda returns a day view for the given date (today when empty), or a
// week view bucketing this week's events by date.
func (e *Engine) Agenda(dateStr string, week bool) (*models.Agenda, error) {
	if week {
		events, err := e.List(models.ListFilter{Week: true})
		if err != nil {
			return nil, err
		}
		byDate := map[string][]models.Event{}
		for i := range events {
			byDate[events[i].Date] = append(byDate[events[i].Date], events[i])
		}
		return &models.Agenda{
			Type:         "week",
			EventsByDate: byDate,
			TotalEvents:  len(events),
		}, nil
	}

	target := e.now().Format(timeparse.DateLayout)
	if dateStr != "" {
		normalized, err := timeparse.NormalizeDate(dateStr)
		if err != nil {
			return nil, err
		}
		target = normalized
	}

	events, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	dayEvents := filterEvents(events, func(ev *models.Event) bool {
		return ev.Date == target
	})

	return &models.Agenda{
		Type:        "day",
		Date:        target,
		Events:      dayEvents,
		TotalEvents: len(dayEvents),
	}, nil
}
