// Package store keeps the authoritative expense collection in memory and
// mirrors it to the expenses bucket after every mutation. Mutations are
// optimistic: memory changes first, the durability write follows
// asynchronously and surfaces failures without rolling anything back.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/expense"
)

type Store struct {
	mu       sync.RWMutex
	expenses []expense.Expense
	writer   *database.Writer
	now      func() time.Time
	subs     []func()
}

type Option func(*Store)

// WithClock overrides the time source used for bookkeeping timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads the persisted expense snapshot and starts the background writer.
// onError receives persistence failures; pass nil for default logging.
func New(db *database.DB, onError func(error), opts ...Option) (*Store, error) {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := db.Load(database.BucketExpenses, &s.expenses); err != nil {
		return nil, err
	}

	s.writer = db.NewWriter(database.BucketExpenses, onError)

	return s, nil
}

// Close drains pending persistence writes.
func (s *Store) Close() {
	s.writer.Close()
}

// Subscribe registers a callback invoked after every mutation, on the
// mutating goroutine. The UI layer uses it to re-render.
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

// persist queues a snapshot copy; must be called with the lock held.
func (s *Store) persist() {
	snapshot := make([]expense.Expense, len(s.expenses))
	copy(snapshot, s.expenses)
	s.writer.Save(snapshot)
}

// AddExpense inserts at the head of the collection, so the default display
// order is most-recently-added first. The caller-supplied id is trusted.
func (s *Store) AddExpense(_ context.Context, e *expense.Expense) error {
	s.mu.Lock()

	rec := *e
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	now := s.now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	*e = rec

	s.expenses = append([]expense.Expense{rec}, s.expenses...)
	s.persist()
	s.mu.Unlock()

	s.notify()

	return nil
}

func (s *Store) GetExpense(_ context.Context, id uuid.UUID) (*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			rec := s.expenses[i]
			return &rec, nil
		}
	}

	return nil, expense.ErrNotFound
}

// UpdateExpense merges the partial update into the record and refreshes
// UpdatedAt. An unknown id is a silent no-op. An empty partial still
// refreshes UpdatedAt.
func (s *Store) UpdateExpense(_ context.Context, id uuid.UUID, params expense.UpdateParams) error {
	s.mu.Lock()

	updated := false

	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}

		rec := &s.expenses[i]
		if params.Amount != nil {
			rec.Amount = *params.Amount
		}

		if params.Description != nil {
			rec.Description = *params.Description
		}

		if params.CategoryID != nil {
			rec.CategoryID = *params.CategoryID
		}

		if params.Date != nil {
			rec.Date = *params.Date
		}

		rec.UpdatedAt = s.now()
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

// DeleteExpense removes the record with the given id; absent ids are ignored.
func (s *Store) DeleteExpense(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()

	deleted := false

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
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

// ListExpenses returns a snapshot copy of the collection in display order.
func (s *Store) ListExpenses(_ context.Context) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*expense.Expense, len(s.expenses))
	for i := range s.expenses {
		rec := s.expenses[i]
		out[i] = &rec
	}

	return out, nil
}
