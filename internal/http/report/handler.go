package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akablan/wari/internal/budget"
	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
	"github.com/akablan/wari/internal/settings"
)

type Handler struct {
	expenses   *expense.Service
	categories *category.Service
	budgets    *budget.Service
	settings   *settings.Service
}

func NewHandler(
	expenses *expense.Service,
	categories *category.Service,
	budgets *budget.Service,
	cfg *settings.Service,
) *Handler {
	return &Handler{
		expenses:   expenses,
		categories: categories,
		budgets:    budgets,
		settings:   cfg,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/budgets", h.budgetStatus)
}

type summaryRow struct {
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
	Amount       float64 `json:"amount"`
	Share        float64 `json:"share"`
}

type summaryResponse struct {
	Label string       `json:"label"`
	Start string       `json:"startDate"`
	End   string       `json:"endDate"`
	Total float64      `json:"total"`
	Rows  []summaryRow `json:"rows"`
}

// summary aggregates the expenses inside the requested range (this month when
// none is given) into a total and a per-category breakdown.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	rng := rangeFromQuery(r)

	all, err := h.expenses.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := report.Filter(all, daterange.Normalize(rng), r.URL.Query().Get("category"))
	rows := report.Breakdown(report.ByCategory(filtered))

	names, err := h.categoryNames(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		Label: daterange.Label(rng, string(cfg.Language)),
		Start: rng.Start.Format(time.DateOnly),
		End:   rng.End.Format(time.DateOnly),
		Total: report.Total(filtered),
		Rows:  make([]summaryRow, 0, len(rows)),
	}

	for _, row := range rows {
		resp.Rows = append(resp.Rows, summaryRow{
			Category:     row.CategoryID,
			CategoryName: names[row.CategoryID],
			Amount:       row.Amount,
			Share:        row.Share,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type budgetStatusRow struct {
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
	Limit        float64 `json:"limit"`
	Spent        float64 `json:"spent"`
	Progress     float64 `json:"progress"`
	Tier         string  `json:"tier"`
	Remaining    float64 `json:"remaining"`
	Overage      float64 `json:"overage"`
}

// budgetStatus evaluates each configured budget against the spend inside the
// requested range (this month when none is given).
func (h *Handler) budgetStatus(w http.ResponseWriter, r *http.Request) {
	rng := rangeFromQuery(r)

	all, err := h.expenses.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := report.Filter(all, daterange.Normalize(rng), "")
	spent := report.ByCategory(filtered)

	budgets, err := h.budgets.All(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	names, err := h.categoryNames(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rows := make([]budgetStatusRow, 0, len(budgets))

	for _, id := range sortedKeys(budgets) {
		ev := budget.Evaluate(id, budgets, spent)
		rows = append(rows, budgetStatusRow{
			Category:     ev.CategoryID,
			CategoryName: names[ev.CategoryID],
			Limit:        ev.Limit,
			Spent:        ev.Spent,
			Progress:     ev.Progress,
			Tier:         string(ev.Tier),
			Remaining:    ev.Remaining,
			Overage:      ev.Overage,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rows); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := h.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	return names, nil
}

func rangeFromQuery(r *http.Request) daterange.Range {
	if preset, ok := daterange.PresetFromString(r.URL.Query().Get("range")); ok {
		return daterange.Resolve(preset, time.Now())
	}

	start, err1 := time.Parse(time.DateOnly, r.URL.Query().Get("start_date"))
	end, err2 := time.Parse(time.DateOnly, r.URL.Query().Get("end_date"))

	if err1 == nil && err2 == nil {
		return daterange.Range{Start: start, End: end}
	}

	return daterange.Resolve(daterange.ThisMonth, time.Now())
}

func sortedKeys(m budget.Budgets) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	// Stable output order for clients.
	sort.Strings(keys)

	return keys
}
