package importcsv

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/akablan/wari/internal/category"
	"github.com/akablan/wari/internal/expense"
	"github.com/akablan/wari/internal/importer"
	"github.com/akablan/wari/internal/rules"
)

const maxUploadSize = 10 << 20 // 10 MiB

type Handler struct {
	importer   *importer.Service
	expenses   *expense.Service
	categories *category.Service
	rules      *rules.Service
}

func NewHandler(
	imp *importer.Service,
	expenses *expense.Service,
	categories *category.Service,
	r *rules.Service,
) *Handler {
	return &Handler{
		importer:   imp,
		expenses:   expenses,
		categories: categories,
		rules:      r,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
	r.Get("/rules", h.listRules)
	r.Post("/rules", h.createRule)
}

type importResponse struct {
	Imported int `json:"imported"`
}

// upload accepts a multipart "file" field, parses it as a bank CSV, and
// creates one expense per row. Category labels in the file are matched by
// name; rows without a recognizable category go through the learned rules
// and fall back to "other".
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importer.Import(importer.FormatCSV, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	byName, err := h.categoriesByName(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	imported := 0

	for _, row := range rows {
		categoryID, err := h.resolveCategory(r.Context(), byName, row)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if _, err := h.expenses.Create(r.Context(), expense.CreateParams{
			Amount:      row.Amount,
			Description: row.Description,
			CategoryID:  categoryID,
			Date:        row.Date,
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		imported++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: imported}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) resolveCategory(ctx context.Context, byName map[string]string, row importer.Row) (string, error) {
	if id, ok := byName[strings.ToLower(strings.TrimSpace(row.Category))]; ok {
		return id, nil
	}

	suggested, err := h.rules.Suggest(ctx, row.Description)
	if err != nil {
		return "", err
	}

	if suggested != "" {
		return suggested, nil
	}

	return category.OtherID, nil
}

func (h *Handler) categoriesByName(ctx context.Context) (map[string]string, error) {
	cats, err := h.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	return byName, nil
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	all, err := h.rules.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(all); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRuleRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Pattern == "" || req.Category == "" {
		http.Error(w, "pattern and category are required", http.StatusBadRequest)
		return
	}

	if err := h.rules.Learn(r.Context(), req.Pattern, req.Category); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
