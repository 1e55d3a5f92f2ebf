// Package store persists the settings snapshot (currency and language) in
// the settings bucket.
package store

import (
	"context"
	"sync"

	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/settings"
)

type Store struct {
	mu       sync.RWMutex
	settings settings.Settings
	writer   *database.Writer
}

func New(db *database.DB, onError func(error)) (*Store, error) {
	s := &Store{settings: settings.Default()}

	if _, err := db.Load(database.BucketSettings, &s.settings); err != nil {
		return nil, err
	}

	s.writer = db.NewWriter(database.BucketSettings, onError)

	return s, nil
}

func (s *Store) Close() {
	s.writer.Close()
}

func (s *Store) GetSettings(_ context.Context) (settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, v settings.Settings) error {
	s.mu.Lock()
	s.settings = v
	s.writer.Save(v)
	s.mu.Unlock()

	return nil
}
