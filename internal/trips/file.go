package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/randytsao24/gorest/internal/logger"
	"github.com/randytsao24/gorest/internal/models"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps trips in memory and mirrors them to a JSON file. Each append
// rewrites the file through a temp file and rename, so readers of the file
// never see a partial write.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu    sync.RWMutex
	trips []models.Trip
}

// OpenFileStore loads trips from path. A missing file starts an empty log; an
// unreadable or corrupt one is logged and also starts empty.
func OpenFileStore(path string, l *slog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("trip file path is required")
	}
	if l == nil {
		l = slog.Default()
	}
	s := &FileStore{path: path, logger: l}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		l.Warn("trips_file_unreadable", "path", path, logger.Err(err))
		return s, nil
	}
	if err := json.Unmarshal(data, &s.trips); err != nil {
		l.Warn("trips_file_corrupt", "path", path, logger.Err(err))
		s.trips = nil
	}
	return s, nil
}

// Append assigns the next ID and persists the trip
func (s *FileStore) Append(_ context.Context, trip models.Trip) (models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip.ID = int64(len(s.trips)) + 1
	next := make([]models.Trip, len(s.trips), len(s.trips)+1)
	copy(next, s.trips)
	next = append(next, trip)

	if err := writeFileAtomic(s.path, next); err != nil {
		return models.Trip{}, fmt.Errorf("saving trips: %w", err)
	}
	s.trips = next
	return trip, nil
}

// List returns a copy of all trips
func (s *FileStore) List(_ context.Context) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

func writeFileAtomic(path string, trips []models.Trip) error {
	data, err := json.MarshalIndent(trips, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
