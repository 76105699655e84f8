package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		time      string
		wantDate  string
		wantClock string
	}{
		{"canonical", "2025-03-10", "09:00", "2025-03-10", "09:00"},
		{"padded input", " 2025-03-10 ", " 09:00 ", "2025-03-10", "09:00"},
		{"slash date", "2025/03/10", "14:30", "2025-03-10", "14:30"},
		{"with seconds", "2025-03-10", "09:00:30", "2025-03-10", "09:00"},
		{"date only", "2025-03-10", "", "2025-03-10", "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock, err := Normalize(tt.date, tt.time)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantClock, clock)
		})
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"not a date", "2025-13-45"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := Normalize(input, "09:00")
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Input, input)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	date, err := NormalizeDate("2025/06/15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", date)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"wednesday", time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local), "2025-03-10", "2025-03-16"},
		{"monday", time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), "2025-03-10", "2025-03-16"},
		{"sunday", time.Date(2025, 3, 16, 23, 59, 0, 0, time.Local), "2025-03-10", "2025-03-16"},
		{"year boundary", time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local), "2025-12-29", "2026-01-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
