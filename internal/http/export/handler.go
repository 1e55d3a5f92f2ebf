package export

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akablan/wari/internal/daterange"
	"github.com/akablan/wari/internal/export"
	"github.com/akablan/wari/internal/settings"
)

type Handler struct {
	svc       *export.Service
	settings  *settings.Service
	outputDir string
}

func NewHandler(svc *export.Service, cfg *settings.Service, outputDir string) *Handler {
	return &Handler{svc: svc, settings: cfg, outputDir: outputDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.export)
	r.Get("/summary", h.summary)
}

type exportRequest struct {
	Range     string `json:"range,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Category  string `json:"category,omitempty"`
}

type exportResponse struct {
	Path string `json:"path"`
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng, err := resolveRange(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	path, err := h.svc.Export(r.Context(), rng, req.Category, h.outputDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(exportResponse{Path: path}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// summary returns the plain-text spending summary for the requested range,
// suitable for copy-pasting into a message.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	rng, err := resolveRange(exportRequest{
		Range:     r.URL.Query().Get("range"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	text, err := h.svc.Summary(r.Context(), rng, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func resolveRange(req exportRequest) (daterange.Range, error) {
	if preset, ok := daterange.PresetFromString(req.Range); ok {
		return daterange.Resolve(preset, time.Now()), nil
	}

	if req.StartDate != "" || req.EndDate != "" {
		start, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			return daterange.Range{}, err
		}

		end, err := time.Parse(time.DateOnly, req.EndDate)
		if err != nil {
			return daterange.Range{}, err
		}

		return daterange.Range{Start: start, End: end}, nil
	}

	return daterange.Resolve(daterange.ThisMonth, time.Now()), nil
}
