// Package store persists the full event collection as an ordered
// sequence of records. Backends load everything and rewrite everything;
// there is no partial update.
package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Asurkatha/calctl/internal/models"
)

// Store is the persistence collaborator for the event engine.
type Store interface {
	// Load returns the full ordered collection. A missing or
	// unreadable store yields an empty collection, not an error.
	Load() ([]models.Event, error)
	// Save atomically replaces the persisted collection.
	Save(events []models.Event) error
}

// Open selects a backend by name. path is the store file location for
// both backends.
func Open(backend, path string, log zerolog.Logger) (Store, error) {
	switch backend {
	case "", "json":
		return NewFileStore(path, log), nil
	case "sqlite":
		return OpenSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
