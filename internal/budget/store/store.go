// Package store persists the category→limit budget mapping in the budgets
// bucket. Set-only contract: a limit is cleared by overwriting it with 0.
package store

import (
	"context"
	"sync"

	"github.com/akablan/wari/internal/budget"
	"github.com/akablan/wari/internal/database"
)

type Store struct {
	mu      sync.RWMutex
	budgets budget.Budgets
	writer  *database.Writer
	subs    []func()
}

func New(db *database.DB, onError func(error)) (*Store, error) {
	s := &Store{budgets: budget.Budgets{}}

	if _, err := db.Load(database.BucketBudgets, &s.budgets); err != nil {
		return nil, err
	}

	s.writer = db.NewWriter(database.BucketBudgets, onError)

	return s, nil
}

func (s *Store) Close() {
	s.writer.Close()
}

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

func (s *Store) SetBudget(_ context.Context, categoryID string, limit float64) error {
	s.mu.Lock()

	s.budgets[categoryID] = limit

	snapshot := make(budget.Budgets, len(s.budgets))
	for id, v := range s.budgets {
		snapshot[id] = v
	}

	s.writer.Save(snapshot)
	s.mu.Unlock()

	s.notify()

	return nil
}

func (s *Store) ListBudgets(_ context.Context) (budget.Budgets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(budget.Budgets, len(s.budgets))
	for id, v := range s.budgets {
		out[id] = v
	}

	return out, nil
}
