package view

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/category"
	categorystore "github.com/akablan/wari/internal/category/store"
	"github.com/akablan/wari/internal/database"
	"github.com/akablan/wari/internal/expense"
	expensestore "github.com/akablan/wari/internal/expense/store"
	"github.com/akablan/wari/internal/settings"
	settingsstore "github.com/akablan/wari/internal/settings/store"
)

func newExpensesFixture(t *testing.T) (ExpensesModel, *expense.Service) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "wari.db"))
	require.NoError(t, err)

	onError := func(err error) {
		t.Errorf("unexpected persistence error: %v", err)
	}

	expSt, err := expensestore.New(db, onError)
	require.NoError(t, err)

	catSt, err := categorystore.New(db, onError)
	require.NoError(t, err)

	cfgSt, err := settingsstore.New(db, onError)
	require.NoError(t, err)

	t.Cleanup(func() {
		expSt.Close()
		catSt.Close()
		cfgSt.Close()
		db.Close()
	})

	expSvc := expense.NewService(expSt)

	return NewExpensesModel(expSvc, category.NewService(catSt), settings.NewService(cfgSt)), expSvc
}

func TestExpensesModel_RecordsChangedReloads(t *testing.T) {
	m, expSvc := newExpensesFixture(t)

	_, err := expSvc.Create(context.Background(), expense.CreateParams{
		Amount:      15,
		Description: "Taxi",
		CategoryID:  "transport",
		Date:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, cmd := m.Update(RecordsChangedMsg{})
	require.NotNil(t, cmd, "browse screen reloads on external changes")

	msg, ok := cmd().(loadExpensesMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	require.Len(t, msg.expenses, 1)
	assert.Equal(t, "Taxi", msg.expenses[0].Description)
}

func TestExpensesModel_RecordsChangedIgnoredMidEdit(t *testing.T) {
	m, _ := newExpensesFixture(t)
	m.state = expensesStateEdit

	updated, cmd := m.Update(RecordsChangedMsg{})

	assert.Nil(t, cmd, "open form is left alone")
	assert.Equal(t, expensesStateEdit, updated.(ExpensesModel).state)
}
