package residency

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/api"
	"stagebook/internal/artist"
	"stagebook/internal/audit"
	"stagebook/internal/calendar"
	"stagebook/internal/venue"
	"stagebook/pkg/db"
)

type Handlers struct {
	DB          *pgxpool.Pool
	Residencies *Repository
	Venues      *venue.Repository
	Artists     *artist.Repository
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	res, err := h.Residencies.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "residency not found")
		return
	}
	if actor.Role == "venue" && res.VenueID != actor.VenueID {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "residency not found")
		return
	}

	weeks, err := h.Residencies.ListWeeks(r.Context(), res.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"residency": res,
		"weeks":     weeks,
	})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	venueID := actor.VenueID
	if actor.Role == "admin" {
		venueID = strings.TrimSpace(r.URL.Query().Get("venue"))
	}
	if venueID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing venue")
		return
	}

	items, err := h.Residencies.ListByVenue(r.Context(), venueID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

type PatchDatesRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// PatchDates moves a residency's date range and recomputes its weeks from
// scratch; week rows are never patched incrementally. Overlap with the
// venue's other residencies is not checked.
func (h Handlers) PatchDates(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req PatchDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, calendar.CodeInvalidDate, err.Error())
		return
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, calendar.CodeInvalidDate, err.Error())
		return
	}

	weeks, err := calendar.PartitionWeeks(start, end, AnchorWeekday)
	if err != nil {
		if ve, ok := err.(calendar.ValidationError); ok {
			api.WriteError(w, http.StatusBadRequest, ve.Code, ve.Message)
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		res, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if actor.Role == "venue" && res.VenueID != actor.VenueID {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "residency not found")
			return pgx.ErrTxCommitRollback
		}
		if actor.Role == "artist" {
			api.WriteError(w, http.StatusForbidden, "UNAUTHORIZED", "artists may not move residencies")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateDates(r.Context(), tx, res.ID, start, end); err != nil {
			return err
		}
		if err := ReplaceWeeks(r.Context(), tx, res.ID, weeks); err != nil {
			return err
		}

		bookingID := res.BookingID
		_ = audit.Insert(r.Context(), tx, res.VenueID, &bookingID, "RESIDENCY_MOVED", actor.Role, map[string]any{
			"from": map[string]string{"start": res.StartDate.String(), "end": res.EndDate.String()},
			"to":   map[string]string{"start": start.String(), "end": end.String()},
		})

		return nil
	})

	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "residency not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"weeks": len(weeks)})
}

// Roadmap is the public schedule view for a venue, served cross-origin to
// the frontend. No session required; the venue is addressed by domain.
func (h Handlers) Roadmap(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	if domain == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing venue domain")
		return
	}

	v, err := h.Venues.FindByDomain(r.Context(), domain)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "venue not found")
		return
	}

	items, err := h.Residencies.ListByVenue(r.Context(), v.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	type roadmapEntry struct {
		Residency *Residency      `json:"residency"`
		Artist    *artist.Artist  `json:"artist,omitempty"`
		Weeks     []calendar.Week `json:"weeks"`
	}

	out := make([]roadmapEntry, 0, len(items))
	for i := range items {
		res := &items[i]
		weeks, err := h.Residencies.ListWeeks(r.Context(), res.ID)
		if err != nil {
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			return
		}
		entry := roadmapEntry{Residency: res, Weeks: weeks}
		if a, err := h.Artists.GetArtist(r.Context(), res.ArtistID); err == nil {
			entry.Artist = a
		}
		out = append(out, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"venue":       map[string]string{"id": v.ID, "name": v.Name, "domain": v.Domain},
		"residencies": out,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
