// Package store keeps the category collection in memory, mirrored to the
// categories bucket. The seeded default set is always present: first run (or
// an empty snapshot) starts from category.Defaults(), and the mutators
// protect default entries.
package store

import (
	"context"
	"sync"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/database"
)

type Store struct {
	mu         sync.RWMutex
	categories []category.Category
	db         *database.DB
	writer     *database.Writer
	subs       []func()
}

// New loads the persisted category snapshot, seeding the defaults when the
// bucket is empty, and starts the background writer.
func New(db *database.DB, onError func(error)) (*Store, error) {
	s := &Store{db: db}

	found, err := db.Load(database.BucketCategories, &s.categories)
	if err != nil {
		return nil, err
	}

	if !found || len(s.categories) == 0 {
		for _, c := range category.Defaults() {
			s.categories = append(s.categories, *c)
		}
	}

	s.writer = db.NewWriter(database.BucketCategories, onError)

	return s, nil
}

func (s *Store) Close() {
	s.writer.Close()
}

// Subscribe registers a callback invoked after every effective mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := s.subs
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

func (s *Store) persist() {
	snapshot := make([]category.Category, len(s.categories))
	copy(snapshot, s.categories)
	s.writer.Save(snapshot)
}

func (s *Store) AddCategory(_ context.Context, c *category.Category) error {
	s.mu.Lock()
	s.categories = append(s.categories, *c)
	s.persist()
	s.mu.Unlock()

	s.notify()

	return nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			rec := s.categories[i]
			return &rec, nil
		}
	}

	return nil, category.ErrNotFound
}

// UpdateCategory applies a partial update to a custom category. Unknown ids
// and default categories are silent no-ops.
func (s *Store) UpdateCategory(_ context.Context, id string, params category.UpdateParams) error {
	s.mu.Lock()

	updated := false

	for i := range s.categories {
		if s.categories[i].ID != id || s.categories[i].IsDefault {
			continue
		}

		rec := &s.categories[i]
		if params.Name != nil {
			rec.Name = *params.Name
		}

		if params.Icon != nil {
			rec.Icon = *params.Icon
		}

		if params.Color != nil {
			rec.Color = *params.Color
		}

		updated = true

		break
	}

	if updated {
		s.persist()
	}

	s.mu.Unlock()

	if updated {
		s.notify()
	}

	return nil
}

// DeleteCategory removes a custom category. Default categories are protected;
// absent ids are ignored.
func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()

	deleted := false

	for i := range s.categories {
		if s.categories[i].ID == id && !s.categories[i].IsDefault {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			deleted = true

			break
		}
	}

	if deleted {
		s.persist()
	}

	s.mu.Unlock()

	if deleted {
		s.notify()
	}

	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*category.Category, len(s.categories))
	for i := range s.categories {
		rec := s.categories[i]
		out[i] = &rec
	}

	return out, nil
}

// ReplaceAll swaps in a whole new collection. Used by the reset-to-defaults
// flow: the old snapshot is cleared from the bucket before the replacement is
// queued, so a reset discards the persisted state even if the process dies
// before the new snapshot lands (first-run seeding covers the gap). Expenses
// referencing removed categories are left to the caller.
func (s *Store) ReplaceAll(_ context.Context, categories []*category.Category) error {
	s.mu.Lock()

	if err := s.db.Clear(database.BucketCategories); err != nil {
		s.mu.Unlock()
		return err
	}

	s.categories = s.categories[:0]
	for _, c := range categories {
		s.categories = append(s.categories, *c)
	}

	s.persist()
	s.mu.Unlock()

	s.notify()

	return nil
}
