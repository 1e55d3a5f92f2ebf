// Package store persists categorization rules in the rules bucket.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/rules"
)

type Store struct {
	mu     sync.RWMutex
	rules  []rules.Rule
	writer *database.Writer
}

func New(db *database.DB, onError func(error)) (*Store, error) {
	s := &Store{}

	if _, err := db.Load(database.BucketRules, &s.rules); err != nil {
		return nil, err
	}

	s.writer = db.NewWriter(database.BucketRules, onError)

	return s, nil
}

func (s *Store) Close() {
	s.writer.Close()
}

// FindCategory returns the category of the first rule whose pattern appears
// in the description, compared case-insensitively. Empty string means no
// match.
func (s *Store) FindCategory(_ context.Context, description string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc := strings.ToLower(description)

	for _, r := range s.rules {
		if strings.Contains(desc, strings.ToLower(r.Pattern)) {
			return r.CategoryID, nil
		}
	}

	return "", nil
}

// CreateRule appends a rule, or retargets an existing rule with the same
// pattern.
func (s *Store) CreateRule(_ context.Context, pattern, categoryID string) error {
	s.mu.Lock()

	replaced := false

	for i := range s.rules {
		if strings.EqualFold(s.rules[i].Pattern, pattern) {
			s.rules[i].CategoryID = categoryID
			replaced = true

			break
		}
	}

	if !replaced {
		s.rules = append(s.rules, rules.Rule{Pattern: pattern, CategoryID: categoryID})
	}

	snapshot := make([]rules.Rule, len(s.rules))
	copy(snapshot, s.rules)
	s.writer.Save(snapshot)
	s.mu.Unlock()

	return nil
}

func (s *Store) ListRules(_ context.Context) ([]rules.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rules.Rule, len(s.rules))
	copy(out, s.rules)

	return out, nil
}
