package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Asurkatha/calctl/internal/calendar"
	"github.com/Asurkatha/calctl/internal/models"
	"github.com/Asurkatha/calctl/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *calendar.Engine) {
	t.Helper()
	log := zerolog.Nop()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "events.json"), log)
	engine := calendar.New(st, log)
	srv := New("127.0.0.1:0", engine, &log)
	ts := httptest.NewServer(srv.Server.Handler)
	t.Cleanup(ts.Close)
	return ts, engine
}

func get(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	resp := get(t, ts.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestListEvents(t *testing.T) {
	ts, engine := newTestServer(t)

	_, err := engine.Add(models.AddRequest{Title: "Future", Date: "2099-01-05", Time: "09:00", Duration: 30})
	require.NoError(t, err)

	var events []models.Event
	resp := get(t, ts.URL+"/events?from=2099-01-01&to=2099-12-31", &events)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, events, 1)
	assert.Equal(t, "Future", events[0].Title)
}

func TestListEventsBadDate(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/events?from=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEvent(t *testing.T) {
	ts, engine := newTestServer(t)

	event, err := engine.Add(models.AddRequest{Title: "Demo", Date: "2099-01-05", Time: "09:00", Duration: 90})
	require.NoError(t, err)

	var detail models.EventDetail
	resp := get(t, ts.URL+"/events/"+event.ID, &detail)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, event.ID, detail.ID)
	assert.Equal(t, "10:30", detail.EndTime)

	resp = get(t, ts.URL+"/events/evt-zzzz", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAgenda(t *testing.T) {
	ts, engine := newTestServer(t)

	_, err := engine.Add(models.AddRequest{Title: "Demo", Date: "2099-01-05", Time: "09:00", Duration: 30})
	require.NoError(t, err)

	var agenda models.Agenda
	resp := get(t, ts.URL+"/agenda?date=2099-01-05", &agenda)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "day", agenda.Type)
	assert.Equal(t, 1, agenda.TotalEvents)
}
