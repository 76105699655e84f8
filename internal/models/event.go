package models

import (
	"time"
)

// Timestamp layout used for the created/updated stamps. Nanosecond
// precision keeps two edits within the same second distinguishable.
const TimestampLayout = time.RFC3339Nano

// Event is a single scheduled calendar item. Location and Description are
// pointers so that an absent value serializes as an explicit JSON null.
type Event struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`       // YYYY-MM-DD
	StartTime   string  `json:"start_time"` // HH:MM, 24-hour
	Duration    int     `json:"duration"`   // minutes
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Created     string  `json:"created"`
	Updated     string  `json:"updated"`
}

// Start returns the full start datetime in local time.
func (e *Event) Start() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", e.Date+" "+e.StartTime, time.Local)
}

// End returns the end datetime, start plus duration. An event may spill
// past midnight into the next day.
func (e *Event) End() (time.Time, error) {
	start, err := e.Start()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(e.Duration) * time.Minute), nil
}

// EndClock returns the derived end time as an HH:MM string.
func (e *Event) EndClock() (string, error) {
	end, err := e.End()
	if err != nil {
		return "", err
	}
	return end.Format("15:04"), nil
}

// TimeRange renders the event's span as "HH:MM - HH:MM" for conflict
// reporting.
func (e *Event) TimeRange() string {
	end, err := e.EndClock()
	if err != nil {
		return e.StartTime
	}
	return e.StartTime + " - " + end
}

// AddRequest carries the inputs for creating an event.
type AddRequest struct {
	Title       string `validate:"required"`
	Date        string `validate:"required"`
	Time        string `validate:"required"`
	Duration    int    `validate:"gt=0"`
	Location    string
	Description string
	Force       bool
}

// EditRequest carries a partial update. Nil means "leave the stored value
// unchanged"; a non-nil empty string is an explicit value chosen by the
// caller.
type EditRequest struct {
	Title       *string
	Date        *string
	Time        *string
	Duration    *int
	Location    *string
	Description *string
}

// EventDetail is the show() result: the event plus its derived end time
// and any events it currently overlaps with.
type EventDetail struct {
	Event
	EndTime   string  `json:"end_time"`
	Conflicts []Event `json:"conflicts"`
}

// ListFilter selects events for list(). Today takes precedence over Week,
// which takes precedence over the From/To bounds.
type ListFilter struct {
	From  string
	To    string
	Today bool
	Week  bool
}

// Agenda is a day or week view of the store.
type Agenda struct {
	Type         string             `json:"type"` // "day" or "week"
	Date         string             `json:"date,omitempty"`
	Events       []Event            `json:"events,omitempty"`
	EventsByDate map[string][]Event `json:"events_by_date,omitempty"`
	TotalEvents  int                `json:"total_events"`
}
