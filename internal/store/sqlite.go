package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/Asurkatha/calctl/internal/models"
)

// SQLiteStore keeps the collection in a single SQLite table under the
// same load-all / rewrite-all contract as the file backend.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	duration INTEGER NOT NULL,
	location TEXT,
	description TEXT,
	created TEXT NOT NULL,
	updated TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_date_start ON events(date, start_time);
`

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating events table: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Load returns all events ordered by (date, start_time).
func (s *SQLiteStore) Load() ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT id, title, date, start_time, duration, location, description, created, updated
		FROM events
		ORDER BY date, start_time
	`)
	if err != nil {
		s.log.Warn().Err(err).Msg("store unreadable, treating as empty")
		return []models.Event{}, nil
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var (
			event                 models.Event
			location, description sql.NullString
		)
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Date,
			&event.StartTime,
			&event.Duration,
			&location,
			&description,
			&event.Created,
			&event.Updated,
		); err != nil {
			s.log.Warn().Err(err).Msg("store row corrupt, treating store as empty")
			return []models.Event{}, nil
		}
		if location.Valid {
			event.Location = &location.String
		}
		if description.Valid {
			event.Description = &description.String
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		s.log.Warn().Err(err).Msg("store read failed, treating as empty")
		return []models.Event{}, nil
	}
	return events, nil
}

// Save replaces the persisted collection in one transaction.
func (s *SQLiteStore) Save(events []models.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO events (id, title, date, start_time, duration, location, description, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, event := range events {
		var location, description any
		if event.Location != nil {
			location = *event.Location
		}
		if event.Description != nil {
			description = *event.Description
		}
		if _, err := stmt.Exec(
			event.ID,
			event.Title,
			event.Date,
			event.StartTime,
			event.Duration,
			location,
			description,
			event.Created,
			event.Updated,
		); err != nil {
			return fmt.Errorf("inserting event %s: %w", event.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
