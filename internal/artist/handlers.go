package artist

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"stagebook/internal/api"
)

type Handlers struct {
	Repo *Repository
}

func (h Handlers) ListFormats(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	// Artists see their own catalogue; venues and admins browse all, or
	// filter with ?artist=.
	artistID := strings.TrimSpace(r.URL.Query().Get("artist"))
	if actor.Role == "artist" {
		artistID = actor.ArtistID
	}

	items, err := h.Repo.ListFormats(r.Context(), artistID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func (h Handlers) GetFormat(w http.ResponseWriter, r *http.Request) {
	if api.ActorFromContext(r.Context()) == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	f, err := h.Repo.GetFormat(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "format not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f)
}

type PutFormatRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	BaseFee         string `json:"baseFee"`
	Currency        string `json:"currency"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (h Handlers) PutFormat(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	artistID := actor.ArtistID
	if actor.Role == "admin" {
		artistID = strings.TrimSpace(r.URL.Query().Get("artist"))
	}
	if artistID == "" {
		api.WriteError(w, http.StatusForbidden, "UNAUTHORIZED", "only artists manage formats")
		return
	}

	var req PutFormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Title == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing title")
		return
	}
	fee, err := decimal.NewFromString(req.BaseFee)
	if err != nil || fee.LessThanOrEqual(decimal.Zero) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "baseFee must be a positive decimal")
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	if req.DurationMinutes <= 0 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "durationMinutes must be positive")
		return
	}

	out, err := h.Repo.UpsertFormat(r.Context(), &Format{
		ArtistID:        artistID,
		Title:           req.Title,
		Description:     req.Description,
		BaseFee:         fee.String(),
		Currency:        currency,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
