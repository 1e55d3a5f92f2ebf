// Package report derives display-ready aggregates from an expense snapshot.
// Everything here is a pure function of its inputs: aggregates are recomputed
// from the full collection on demand rather than maintained incrementally,
// which is cheap at personal-history sizes and needs no invalidation.
package report

import (
	"sort"

	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
)

// Filter returns the expenses whose date falls inside r (inclusive) and, when
// categoryID is non-empty, whose category matches it. The result is sorted by
// date descending; records with equal dates keep their relative input order.
func Filter(all []*expense.Expense, r daterange.Range, categoryID string) []*expense.Expense {
	var out []*expense.Expense

	for _, e := range all {
		if !r.Contains(e.Date) {
			continue
		}

		if categoryID != "" && e.CategoryID != categoryID {
			continue
		}

		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out
}

// Total sums the amounts of the given expenses. Empty input yields 0.
func Total(expenses []*expense.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}

	return sum
}

// ByCategory folds the expenses into per-category sums. Categories with no
// matching expense are absent from the map rather than present with 0.
func ByCategory(expenses []*expense.Expense) map[string]float64 {
	sums := make(map[string]float64)
	for _, e := range expenses {
		sums[e.CategoryID] += e.Amount
	}

	return sums
}

// Row is one line of a spending breakdown: a category's total and its share
// of the overall total, in percent.
type Row struct {
	CategoryID string
	Amount     float64
	Share      float64
}

// Breakdown turns per-category sums into rows sorted by amount descending.
// Shares are 0 when the overall total is 0.
func Breakdown(byCategory map[string]float64) []Row {
	var total float64
	for _, amount := range byCategory {
		total += amount
	}

	rows := make([]Row, 0, len(byCategory))

	for id, amount := range byCategory {
		row := Row{CategoryID: id, Amount: amount}
		if total > 0 {
			row.Share = amount / total * 100
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}

		return rows[i].CategoryID < rows[j].CategoryID
	})

	return rows
}
