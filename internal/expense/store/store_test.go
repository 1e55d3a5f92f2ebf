package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/expense/store"
)

func openDB(t *testing.T, path string) *database.DB {
	t.Helper()

	db, err := database.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func failOnPersistError(t *testing.T) func(error) {
	t.Helper()

	return func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	}
}

func TestStore_AddExpense(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "wari.db"))

	s, err := store.New(db, failOnPersistError(t))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	first := &expense.Expense{Amount: 10, Description: "first", CategoryID: "food", Date: time.Now()}
	require.NoError(t, s.AddExpense(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	second := &expense.Expense{Amount: 20, Description: "second", CategoryID: "food", Date: time.Now()}
	require.NoError(t, s.AddExpense(ctx, second))

	all, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Most recently added first.
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestStore_GetExpense(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "wari.db"))

	s, err := store.New(db, failOnPersistError(t))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	e := &expense.Expense{Amount: 10, Description: "lunch", CategoryID: "food", Date: time.Now()}
	require.NoError(t, s.AddExpense(ctx, e))

	got, err := s.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "lunch", got.Description)

	_, err = s.GetExpense(ctx, uuid.New())
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestStore_UpdateExpense(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := base

	db := openDB(t, filepath.Join(t.TempDir(), "wari.db"))

	s, err := store.New(db, failOnPersistError(t), store.WithClock(func() time.Time { return current }))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	e := &expense.Expense{Amount: 10, Description: "lunch", CategoryID: "food", Date: base}
	require.NoError(t, s.AddExpense(ctx, e))

	t.Run("PartialUpdate", func(t *testing.T) {
		current = base.Add(time.Hour)
		amount := 15.5

		require.NoError(t, s.UpdateExpense(ctx, e.ID, expense.UpdateParams{Amount: &amount}))

		got, err := s.GetExpense(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, 15.5, got.Amount)
		assert.Equal(t, "lunch", got.Description, "absent fields keep their values")
		assert.Equal(t, current, got.UpdatedAt)
		assert.Equal(t, base, got.CreatedAt)
	})

	t.Run("EmptyPartialStillTouchesUpdatedAt", func(t *testing.T) {
		current = base.Add(2 * time.Hour)

		require.NoError(t, s.UpdateExpense(ctx, e.ID, expense.UpdateParams{}))

		got, err := s.GetExpense(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, current, got.UpdatedAt)
	})

	t.Run("UnknownIDIsNoOp", func(t *testing.T) {
		amount := 99.0
		assert.NoError(t, s.UpdateExpense(ctx, uuid.New(), expense.UpdateParams{Amount: &amount}))
	})
}

func TestStore_DeleteExpense(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "wari.db"))

	s, err := store.New(db, failOnPersistError(t))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	e := &expense.Expense{Amount: 10, Description: "lunch", CategoryID: "food", Date: time.Now()}
	require.NoError(t, s.AddExpense(ctx, e))

	require.NoError(t, s.DeleteExpense(ctx, e.ID))

	all, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Deleting again is fine.
	assert.NoError(t, s.DeleteExpense(ctx, e.ID))
}

func TestStore_Subscribe(t *testing.T) {
	db := openDB(t, filepath.Join(t.TempDir(), "wari.db"))

	s, err := store.New(db, failOnPersistError(t))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	calls := 0
	s.Subscribe(func() { calls++ })

	e := &expense.Expense{Amount: 10, CategoryID: "food", Date: time.Now()}
	require.NoError(t, s.AddExpense(ctx, e))
	assert.Equal(t, 1, calls)

	// No-op mutations do not notify.
	require.NoError(t, s.UpdateExpense(ctx, uuid.New(), expense.UpdateParams{}))
	assert.Equal(t, 1, calls)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wari.db")
	ctx := context.Background()

	db, err := database.New(path)
	require.NoError(t, err)

	s, err := store.New(db, failOnPersistError(t))
	require.NoError(t, err)

	e := &expense.Expense{
		Amount:      42.5,
		Description: "market",
		CategoryID:  "food",
		Date:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.AddExpense(ctx, e))

	s.Close()
	require.NoError(t, db.Close())

	db2 := openDB(t, path)

	s2, err := store.New(db2, failOnPersistError(t))
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, got.Amount)
	assert.Equal(t, "market", got.Description)
	assert.True(t, got.Date.Equal(e.Date))
}
