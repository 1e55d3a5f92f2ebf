package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/report"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.Category,
		Date:        req.Date,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns the expense snapshot, optionally filtered by an inclusive
// date range and a category. Without a range the default display order
// applies (most recently added first); with one, results are date-descending.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	categoryID := r.URL.Query().Get("category")

	rng, hasRange := rangeFromQuery(r)
	if hasRange {
		all = report.Filter(all, daterange.Normalize(rng), categoryID)
	} else if categoryID != "" {
		all = report.Filter(all, daterange.Range{
			Start: time.Time{},
			End:   time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		}, categoryID)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(all)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func rangeFromQuery(r *http.Request) (daterange.Range, bool) {
	if preset, ok := daterange.PresetFromString(r.URL.Query().Get("range")); ok {
		return daterange.Resolve(preset, time.Now()), true
	}

	start, err1 := time.Parse(time.DateOnly, r.URL.Query().Get("start_date"))
	end, err2 := time.Parse(time.DateOnly, r.URL.Query().Get("end_date"))

	if err1 != nil || err2 != nil {
		return daterange.Range{}, false
	}

	return daterange.Range{Start: start, End: end}, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateExpenseRequest struct {
	Amount      *float64   `json:"amount,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Update(r.Context(), id, expense.UpdateParams{
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.Category,
		Date:        req.Date,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
