package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/rules/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "wari.db"))
	require.NoError(t, err)

	s, err := store.New(db, func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
		db.Close()
	})

	return s
}

func TestStore_FindCategory(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRule(ctx, "supermarche", "food"))
	require.NoError(t, s.CreateRule(ctx, "taxi", "transport"))

	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		got, err := s.FindCategory(ctx, "SUPERMARCHE PROXIM ABIDJAN")
		require.NoError(t, err)
		assert.Equal(t, "food", got)
	})

	t.Run("FirstMatchWins", func(t *testing.T) {
		require.NoError(t, s.CreateRule(ctx, "proxim", "shopping"))

		got, err := s.FindCategory(ctx, "supermarche proxim")
		require.NoError(t, err)
		assert.Equal(t, "food", got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		got, err := s.FindCategory(ctx, "pharmacie centrale")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_CreateRule_Retargets(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRule(ctx, "taxi", "transport"))
	require.NoError(t, s.CreateRule(ctx, "TAXI", "entertainment"))

	all, err := s.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "same pattern retargets instead of duplicating")
	assert.Equal(t, "entertainment", all[0].CategoryID)
}
