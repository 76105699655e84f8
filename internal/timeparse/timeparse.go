// Package timeparse turns loosely formatted human date and time input
// into the canonical YYYY-MM-DD / HH:MM forms the rest of the tool works
// with. All parsing is local wall-clock; there is no timezone handling.
package timeparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseError reports input that could not be resolved to a date/time.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date/time %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize parses a free-form date string plus an optional free-form time
// string into a canonical (date, clock) pair. When a time is given it is
// combined with the date before parsing so relative phrases resolve
// against the right day.
func Normalize(dateStr, timeStr string) (string, string, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)

	input := dateStr
	if timeStr != "" {
		input = dateStr + " " + timeStr
	}

	parsed, err := dateparse.ParseLocal(input)
	if err != nil {
		return "", "", &ParseError{Input: input, Err: err}
	}

	return parsed.Format(DateLayout), parsed.Format(ClockLayout), nil
}

// NormalizeDate parses a free-form date string into YYYY-MM-DD.
func NormalizeDate(dateStr string) (string, error) {
	date, _, err := Normalize(dateStr, "")
	return date, err
}

// WeekBounds returns the Monday and Sunday of the week containing now, as
// canonical date strings.
func WeekBounds(now time.Time) (string, string) {
	// time.Weekday has Sunday=0; remap so Monday=0.
	offset := (int(now.Weekday()) + 6) % 7
	start := now.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start.Format(DateLayout), end.Format(DateLayout)
}
