package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akablan/wari/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Get("/currencies", h.currencies)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateSettingsRequest struct {
	Currency *string `json:"currency,omitempty"`
	Language *string `json:"language,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Currency != nil {
		c, ok := settings.CurrencyByCode(*req.Currency)
		if !ok {
			http.Error(w, "unknown currency code", http.StatusBadRequest)
			return
		}

		if err := h.svc.SetCurrency(r.Context(), c); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if req.Language != nil {
		lang := settings.Language(*req.Language)
		if lang != settings.LanguageEnglish && lang != settings.LanguageFrench {
			http.Error(w, "unknown language", http.StatusBadRequest)
			return
		}

		if err := h.svc.SetLanguage(r.Context(), lang); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.get(w, r)
}

func (h *Handler) currencies(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(settings.Currencies); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
