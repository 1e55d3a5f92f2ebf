package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func exp(amount float64, categoryID string, date time.Time) *expense.Expense {
	return &expense.Expense{
		ID:         uuid.New(),
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date,
	}
}

func TestFilter(t *testing.T) {
	march := daterange.Normalize(daterange.Range{Start: day(2026, 3, 1), End: day(2026, 3, 31)})

	all := []*expense.Expense{
		exp(10, "food", day(2026, 3, 5)),
		exp(20, "transport", day(2026, 3, 1)),
		exp(30, "food", day(2026, 2, 28)),
		exp(40, "food", day(2026, 3, 31)),
		exp(50, "food", day(2026, 4, 1)),
	}

	t.Run("DateRangeInclusive", func(t *testing.T) {
		got := report.Filter(all, march, "")
		require.Len(t, got, 3)

		// Sorted by date descending.
		assert.Equal(t, day(2026, 3, 31), got[0].Date)
		assert.Equal(t, day(2026, 3, 5), got[1].Date)
		assert.Equal(t, day(2026, 3, 1), got[2].Date)
	})

	t.Run("CategoryFilter", func(t *testing.T) {
		got := report.Filter(all, march, "food")
		require.Len(t, got, 2)

		for _, e := range got {
			assert.Equal(t, "food", e.CategoryID)
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		got := report.Filter(all, march, "housing")
		assert.Empty(t, got)
	})

	t.Run("EqualDatesKeepInputOrder", func(t *testing.T) {
		a := exp(1, "food", day(2026, 3, 10))
		b := exp(2, "food", day(2026, 3, 10))

		got := report.Filter([]*expense.Expense{a, b}, march, "")
		require.Len(t, got, 2)
		assert.Same(t, a, got[0])
		assert.Same(t, b, got[1])
	})
}

func TestTotal(t *testing.T) {
	assert.Zero(t, report.Total(nil))

	got := report.Total([]*expense.Expense{
		exp(10.5, "food", day(2026, 3, 1)),
		exp(20.25, "transport", day(2026, 3, 2)),
	})
	assert.InDelta(t, 30.75, got, 1e-9)
}

func TestByCategory(t *testing.T) {
	sums := report.ByCategory([]*expense.Expense{
		exp(10, "food", day(2026, 3, 1)),
		exp(15, "food", day(2026, 3, 2)),
		exp(5, "transport", day(2026, 3, 3)),
	})

	assert.InDelta(t, 25, sums["food"], 1e-9)
	assert.InDelta(t, 5, sums["transport"], 1e-9)

	_, ok := sums["housing"]
	assert.False(t, ok, "categories without expenses are absent")
}

func TestBreakdown(t *testing.T) {
	t.Run("SortedWithShares", func(t *testing.T) {
		rows := report.Breakdown(map[string]float64{
			"food":      75,
			"transport": 25,
		})
		require.Len(t, rows, 2)

		assert.Equal(t, "food", rows[0].CategoryID)
		assert.InDelta(t, 75.0, rows[0].Share, 1e-9)
		assert.Equal(t, "transport", rows[1].CategoryID)
		assert.InDelta(t, 25.0, rows[1].Share, 1e-9)
	})

	t.Run("SharesSumToHundred", func(t *testing.T) {
		rows := report.Breakdown(map[string]float64{
			"food":      10,
			"transport": 20,
			"housing":   30,
		})

		var total float64
		for _, row := range rows {
			total += row.Share
		}
		assert.InDelta(t, 100.0, total, 1e-9)
	})

	t.Run("ZeroTotal", func(t *testing.T) {
		rows := report.Breakdown(map[string]float64{"food": 0})
		require.Len(t, rows, 1)
		assert.Zero(t, rows[0].Share)
	})

	t.Run("TieBreaksOnCategoryID", func(t *testing.T) {
		rows := report.Breakdown(map[string]float64{
			"transport": 10,
			"food":      10,
		})
		require.Len(t, rows, 2)
		assert.Equal(t, "food", rows[0].CategoryID)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, report.Breakdown(nil))
	})
}
