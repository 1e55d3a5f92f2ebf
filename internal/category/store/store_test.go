package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/category/store"
	"github.com/akablan/wari/internal/database"
)

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()

	db, err := database.New(path)
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

func TestStore_SeedsDefaults(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "wari.db"))

	all, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(category.Defaults()))

	ids := make(map[string]bool, len(all))
	for _, c := range all {
		assert.True(t, c.IsDefault)
		ids[c.ID] = true
	}

	assert.True(t, ids[category.OtherID], "seed includes the other fallback")
	assert.True(t, ids["food"])
}

func TestStore_AddAndGet(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "wari.db"))
	ctx := context.Background()

	c := &category.Category{ID: "custom_1", Name: "Garden", Icon: "🌱", Color: "#00AA00"}
	require.NoError(t, s.AddCategory(ctx, c))

	got, err := s.GetCategory(ctx, "custom_1")
	require.NoError(t, err)
	assert.Equal(t, "Garden", got.Name)
	assert.False(t, got.IsDefault)

	_, err = s.GetCategory(ctx, "custom_missing")
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestStore_DefaultProtection(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "wari.db"))
	ctx := context.Background()

	t.Run("UpdateIsNoOp", func(t *testing.T) {
		name := "Renamed"
		require.NoError(t, s.UpdateCategory(ctx, "food", category.UpdateParams{Name: &name}))

		got, err := s.GetCategory(ctx, "food")
		require.NoError(t, err)
		assert.NotEqual(t, "Renamed", got.Name)
	})

	t.Run("DeleteIsNoOp", func(t *testing.T) {
		require.NoError(t, s.DeleteCategory(ctx, "food"))

		_, err := s.GetCategory(ctx, "food")
		assert.NoError(t, err)
	})
}

func TestStore_CustomCategoryLifecycle(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "wari.db"))
	ctx := context.Background()

	c := &category.Category{ID: "custom_2", Name: "Garden"}
	require.NoError(t, s.AddCategory(ctx, c))

	name := "Backyard"
	require.NoError(t, s.UpdateCategory(ctx, "custom_2", category.UpdateParams{Name: &name}))

	got, err := s.GetCategory(ctx, "custom_2")
	require.NoError(t, err)
	assert.Equal(t, "Backyard", got.Name)

	require.NoError(t, s.DeleteCategory(ctx, "custom_2"))

	_, err = s.GetCategory(ctx, "custom_2")
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestStore_ReplaceAll(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "wari.db"))
	ctx := context.Background()

	require.NoError(t, s.AddCategory(ctx, &category.Category{ID: "custom_3", Name: "Garden"}))

	name := "Renamed"
	_ = s.UpdateCategory(ctx, "custom_3", category.UpdateParams{Name: &name})

	require.NoError(t, s.ReplaceAll(ctx, category.Defaults()))

	all, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(category.Defaults()))

	_, err = s.GetCategory(ctx, "custom_3")
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestStore_ReplaceAll_ClearsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wari.db")
	ctx := context.Background()

	db, err := database.New(path)
	require.NoError(t, err)

	s, err := store.New(db, func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	})
	require.NoError(t, err)

	require.NoError(t, s.AddCategory(ctx, &category.Category{ID: "custom_4", Name: "Garden"}))
	require.NoError(t, s.ReplaceAll(ctx, category.Defaults()))

	s.Close()

	var raw []category.Category
	found, err := db.Load(database.BucketCategories, &raw)
	require.NoError(t, err)
	require.True(t, found, "reset leaves the fresh seed snapshot behind")
	assert.Len(t, raw, len(category.Defaults()))

	require.NoError(t, db.Close())

	db2, err := database.New(path)
	require.NoError(t, err)

	s2, err := store.New(db2, func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		s2.Close()
		db2.Close()
	})

	_, err = s2.GetCategory(ctx, "custom_4")
	assert.ErrorIs(t, err, category.ErrNotFound)
}
