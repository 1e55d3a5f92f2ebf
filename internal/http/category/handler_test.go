package category_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/category"
	categorystore "github.com/akablan/wari/internal/category/store"
	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/expense"
	expensestore "github.com/akablan/wari/internal/expense/store"
	categoryhttp "github.com/akablan/wari/internal/http/category"
)

type fixture struct {
	categories *category.Service
	expenses   *expense.Service
	router     chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "wari.db"))
	require.NoError(t, err)

	onError := func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	}

	catStore, err := categorystore.New(db, onError)
	require.NoError(t, err)

	expStore, err := expensestore.New(db, onError)
	require.NoError(t, err)

	t.Cleanup(func() {
		catStore.Close()
		expStore.Close()
		db.Close()
	})

	f := &fixture{
		categories: category.NewService(catStore),
		expenses:   expense.NewService(expStore),
		router:     chi.NewRouter(),
	}
	f.router.Route("/categories", categoryhttp.NewHandler(f.categories, f.expenses).Routes)

	return f
}

func (f *fixture) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	return rec
}

func TestHandler_Delete_CustomCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.categories.Create(ctx, category.CreateParams{Name: "Garden", Icon: "🌱", Color: "#00AA00"})
	require.NoError(t, err)

	e, err := f.expenses.Create(ctx, expense.CreateParams{
		Amount:      40,
		Description: "Seeds",
		CategoryID:  c.ID,
		Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodDelete, "/categories/"+c.ID)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = f.categories.Get(ctx, c.ID)
	assert.ErrorIs(t, err, category.ErrNotFound)

	got, err := f.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, category.OtherID, got.CategoryID, "orphaned expense moves to other")
}

func TestHandler_Delete_DefaultCategoryIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.expenses.Create(ctx, expense.CreateParams{
		Amount:      12.5,
		Description: "Lunch",
		CategoryID:  "food",
		Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodDelete, "/categories/food")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	got, err := f.categories.Get(ctx, "food")
	require.NoError(t, err)
	assert.True(t, got.IsDefault)

	kept, err := f.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "food", kept.CategoryID, "expenses keep their category")
}

func TestHandler_Delete_UnknownCategory(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodDelete, "/categories/custom_999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
