package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndClock(t *testing.T) {
	e := Event{Date: "2025-03-10", StartTime: "09:00", Duration: 90}

	end, err := e.EndClock()
	require.NoError(t, err)
	assert.Equal(t, "10:30", end)
	assert.Equal(t, "09:00 - 10:30", e.TimeRange())
}

func TestEndCrossesMidnight(t *testing.T) {
	e := Event{Date: "2025-03-10", StartTime: "23:30", Duration: 60}

	end, err := e.End()
	require.NoError(t, err)
	assert.Equal(t, 11, end.Day())
	assert.Equal(t, "00:30", end.Format("15:04"))
}

func TestEventJSONShape(t *testing.T) {
	e := Event{
		ID:        "evt-a1b2",
		Title:     "Standup",
		Date:      "2025-03-10",
		StartTime: "09:00",
		Duration:  15,
		Created:   "2025-03-01T08:00:00Z",
		Updated:   "2025-03-01T08:00:00Z",
	}

	data, err := json.Marshal(&e)
	require.NoError(t, err)

	// Absent optional fields are explicit nulls, never omitted.
	assert.Contains(t, string(data), `"location":null`)
	assert.Contains(t, string(data), `"description":null`)
	assert.Contains(t, string(data), `"start_time":"09:00"`)
}
