package store

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "events.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	st := newSQLite(t)

	require.NoError(t, st.Save(sampleEvents()))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEvents(), loaded)
}

func TestSQLiteStoreEmpty(t *testing.T) {
	st := newSQLite(t)

	events, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	st := newSQLite(t)

	require.NoError(t, st.Save(sampleEvents()))
	require.NoError(t, st.Save(sampleEvents()[:1]))

	loaded, err := st.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "evt-a1b2", loaded[0].ID)
}

func TestSQLiteStoreNullOptionalFields(t *testing.T) {
	st := newSQLite(t)

	require.NoError(t, st.Save(sampleEvents()))

	loaded, err := st.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.NotNil(t, loaded[0].Location)
	assert.Equal(t, "Room 4", *loaded[0].Location)
	assert.Nil(t, loaded[1].Location)
	assert.Nil(t, loaded[1].Description)
}
