package budget

// Budgets maps a category id to its monthly spending limit. A missing entry
// means no budget is set for that category.
type Budgets map[string]float64

// Tier classifies budget progress for display.
type Tier string

const (
	TierOK      Tier = "ok"
	TierWarning Tier = "warning"
	TierOver    Tier = "over"
)

const warningThreshold = 80

// Progress returns the percentage of the budget consumed, clamped to
// [0, 100]. A zero or absent budget yields 0: no tracked progress, not an
// error.
func Progress(limit, spent float64) float64 {
	if limit <= 0 {
		return 0
	}

	p := spent / limit * 100
	if p > 100 {
		return 100
	}

	return p
}

// TierFor maps a progress percentage to its display tier.
func TierFor(progress float64) Tier {
	switch {
	case progress >= 100:
		return TierOver
	case progress >= warningThreshold:
		return TierWarning
	default:
		return TierOK
	}
}

// Evaluation is the spend-vs-budget result for one category.
type Evaluation struct {
	CategoryID string
	Limit      float64
	Spent      float64
	Progress   float64
	Tier       Tier
	// Exactly one of Remaining/Overage is meaningful: Overage when
	// Spent >= Limit, Remaining otherwise.
	Remaining float64
	Overage   float64
}

// Evaluate computes the progress of one category given the configured budgets
// and the per-category spend sums from the aggregation engine.
func Evaluate(categoryID string, budgets Budgets, spentByCategory map[string]float64) Evaluation {
	limit := budgets[categoryID]
	spent := spentByCategory[categoryID]

	ev := Evaluation{
		CategoryID: categoryID,
		Limit:      limit,
		Spent:      spent,
		Progress:   Progress(limit, spent),
	}
	ev.Tier = TierFor(ev.Progress)

	if spent >= limit {
		ev.Overage = spent - limit
	} else {
		ev.Remaining = limit - spent
	}

	return ev
}
