package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/budget/store"
	"github.com/akablan/wari/internal/database"
)

func TestStore_SetAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wari.db")
	ctx := context.Background()

	db, err := database.New(path)
	require.NoError(t, err)

	s, err := store.New(db, func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	})
	require.NoError(t, err)

	require.NoError(t, s.SetBudget(ctx, "food", 200))
	require.NoError(t, s.SetBudget(ctx, "transport", 50))
	require.NoError(t, s.SetBudget(ctx, "food", 250))

	budgets, err := s.ListBudgets(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 250.0, budgets["food"], 1e-9, "set overwrites")
	assert.InDelta(t, 50.0, budgets["transport"], 1e-9)

	// Returned map is a copy.
	budgets["food"] = 999
	again, err := s.ListBudgets(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 250.0, again["food"], 1e-9)

	s.Close()
	require.NoError(t, db.Close())

	// Survives a reopen.
	db2, err := database.New(path)
	require.NoError(t, err)
	defer db2.Close()

	s2, err := store.New(db2, nil)
	require.NoError(t, err)
	defer s2.Close()

	reloaded, err := s2.ListBudgets(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 250.0, reloaded["food"], 1e-9)
}
