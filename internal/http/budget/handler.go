package budget

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akablan/wari/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{categoryID}", h.set)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(budgets); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setBudgetRequest struct {
	Limit float64 `json:"limit"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Limit < 0 {
		http.Error(w, "limit must be non-negative", http.StatusBadRequest)
		return
	}

	if err := h.svc.Set(r.Context(), chi.URLParam(r, "categoryID"), req.Limit); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
