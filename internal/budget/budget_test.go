package budget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akablan/wari/internal/budget"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		limit float64
		spent float64
		want  float64
	}{
		{name: "Halfway", limit: 200, spent: 100, want: 50},
		{name: "Exact", limit: 100, spent: 100, want: 100},
		{name: "ClampedOver", limit: 100, spent: 250, want: 100},
		{name: "ZeroLimit", limit: 0, spent: 50, want: 0},
		{name: "NegativeLimit", limit: -10, spent: 50, want: 0},
		{name: "NoSpend", limit: 100, spent: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, budget.Progress(tt.limit, tt.spent), 1e-9)
		})
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, budget.TierOK, budget.TierFor(0))
	assert.Equal(t, budget.TierOK, budget.TierFor(79.9))
	assert.Equal(t, budget.TierWarning, budget.TierFor(80))
	assert.Equal(t, budget.TierWarning, budget.TierFor(99.9))
	assert.Equal(t, budget.TierOver, budget.TierFor(100))
}

func TestEvaluate(t *testing.T) {
	budgets := budget.Budgets{"food": 200, "transport": 100}
	spent := map[string]float64{"food": 150, "transport": 130}

	t.Run("UnderBudget", func(t *testing.T) {
		ev := budget.Evaluate("food", budgets, spent)

		assert.Equal(t, "food", ev.CategoryID)
		assert.InDelta(t, 75.0, ev.Progress, 1e-9)
		assert.Equal(t, budget.TierOK, ev.Tier)
		assert.InDelta(t, 50.0, ev.Remaining, 1e-9)
		assert.Zero(t, ev.Overage)
	})

	t.Run("OverBudget", func(t *testing.T) {
		ev := budget.Evaluate("transport", budgets, spent)

		assert.InDelta(t, 100.0, ev.Progress, 1e-9)
		assert.Equal(t, budget.TierOver, ev.Tier)
		assert.InDelta(t, 30.0, ev.Overage, 1e-9)
		assert.Zero(t, ev.Remaining)
	})

	t.Run("NoBudgetConfigured", func(t *testing.T) {
		ev := budget.Evaluate("housing", budgets, map[string]float64{"housing": 40})

		assert.Zero(t, ev.Limit)
		assert.Zero(t, ev.Progress)
		assert.Equal(t, budget.TierOK, ev.Tier)
		assert.InDelta(t, 40.0, ev.Overage, 1e-9)
	})

	t.Run("NoSpend", func(t *testing.T) {
		ev := budget.Evaluate("food", budgets, nil)

		assert.Zero(t, ev.Spent)
		assert.Zero(t, ev.Progress)
		assert.InDelta(t, 200.0, ev.Remaining, 1e-9)
	})
}
