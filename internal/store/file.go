package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Asurkatha/calctl/internal/models"
)

// FileStore keeps the collection as a pretty-printed JSON array in a
// single file. Writes go through a temp file plus rename so a concurrent
// reader never observes a half-written store.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a file-backed store at path. The file is not
// touched until the first Save.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load reads the collection. A missing file is an empty store; an
// unparseable file is treated as empty as well, with a warning, so a
// corrupt store never blocks the tool.
func (s *FileStore) Load() ([]models.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Event{}, nil
		}
		s.log.Warn().Err(err).Str("path", s.path).Msg("store unreadable, treating as empty")
		return []models.Event{}, nil
	}

	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("store corrupt, treating as empty")
		return []models.Event{}, nil
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// Save writes the full collection, creating parent directories as needed.
func (s *FileStore) Save(events []models.Event) error {
	if events == nil {
		events = []models.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}
