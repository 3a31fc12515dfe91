package booking

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"stagebook/internal/api"
	"stagebook/internal/artist"
	"stagebook/internal/audit"
	"stagebook/internal/calendar"
	"stagebook/internal/plan"
	"stagebook/internal/residency"
	"stagebook/internal/timeline"
	"stagebook/internal/venue"
	"stagebook/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Bookings *Repository
	Venues   *venue.Repository
	Artists  *artist.Repository
}

// writeEngineError maps workflow and calendar failures onto the HTTP error
// envelope. Reports whether err was a recognized domain error.
func writeEngineError(w http.ResponseWriter, err error) bool {
	if we, ok := err.(WorkflowError); ok {
		status := http.StatusConflict
		if we.Code == CodeUnauthorized {
			status = http.StatusForbidden
		}
		api.WriteError(w, status, we.Code, we.Message)
		return true
	}
	if ve, ok := err.(calendar.ValidationError); ok {
		api.WriteError(w, http.StatusBadRequest, ve.Code, ve.Message)
		return true
	}
	return false
}

type CreateRequest struct {
	ArtistID  string `json:"artistId"`
	FormatID  string `json:"formatId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	FeeAmount string `json:"feeAmount,omitempty"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}
	if actor.Role != string(RoleVenue) {
		api.WriteError(w, http.StatusForbidden, "UNAUTHORIZED", "only venues create booking requests")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.FormatID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing formatId")
		return
	}

	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if start.After(end) {
		writeEngineError(w, calendar.ValidationError{Code: calendar.CodeInvalidRange, Message: "start date must not be after end date"})
		return
	}

	format, err := h.Artists.GetFormat(r.Context(), req.FormatID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "format not found")
		return
	}
	artistID := req.ArtistID
	if artistID == "" {
		artistID = format.ArtistID
	}

	// Fee defaults to the format's base fee; an explicit fee must parse and
	// be positive.
	fee := format.BaseFee
	if req.FeeAmount != "" {
		d, err := decimal.NewFromString(req.FeeAmount)
		if err != nil || d.LessThanOrEqual(decimal.Zero) {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "feeAmount must be a positive decimal")
			return
		}
		fee = d.String()
	}

	created, err := h.Bookings.Insert(r.Context(), &Request{
		DisplayID: newDisplayID(),
		VenueID:   actor.VenueID,
		ArtistID:  artistID,
		FormatID:  format.ID,
		StartDate: start,
		EndDate:   end,
		FeeAmount: fee,
		Currency:  format.Currency,
		Status:    StatusOpen,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	actor := api.ActorFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing actor identity")
		return
	}

	venueID := actor.VenueID
	if actor.Role == string(RoleAdmin) {
		venueID = strings.TrimSpace(r.URL.Query().Get("venue"))
	}
	if venueID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing venue")
		return
	}

	items, err := h.Bookings.ListByVenue(r.Context(), venueID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	lang := langFrom(r)
	out := make([]map[string]any, 0, len(items))
	for _, b := range items {
		out = append(out, withLabel(b, lang))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": out})
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

	b, err := h.getScoped(r, actor, id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	entries, err := timeline.ListByBooking(r.Context(), h.DB, b.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"booking": withLabel(*b, langFrom(r)),
		"events":  entries,
	})
}

type PatchStatusRequest struct {
	Status    string `json:"status"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	FeeAmount string `json:"feeAmount,omitempty"`
}

// PatchStatus drives a booking through the workflow. The whole transition is
// one transaction: the request row is locked, the engine authorizes from
// that snapshot, and for confirmations the usage-counter read, the residency
// materialization, and the counter increment all commit together. Concurrent
// confirmations on the same venue serialize on the usage row lock, so the
// monthly quota can never overcount.
func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
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

	var req PatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	termEdit := req.StartDate != "" || req.EndDate != "" || req.FeeAmount != ""

	var resp map[string]any
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if actor.Role == string(RoleVenue) && b.VenueID != actor.VenueID {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return pgx.ErrTxCommitRollback
		}

		owner, err := h.Venues.GetByID(r.Context(), b.VenueID)
		if err != nil {
			return err
		}
		quota := plan.ForTier(owner.Plan)

		// Resolve the terms the transition will commit with.
		newStart, newEnd, newFee := b.StartDate, b.EndDate, b.FeeAmount
		if termEdit {
			if req.StartDate != "" {
				if newStart, err = calendar.ParseDate(req.StartDate); err != nil {
					writeEngineError(w, err)
					return pgx.ErrTxCommitRollback
				}
			}
			if req.EndDate != "" {
				if newEnd, err = calendar.ParseDate(req.EndDate); err != nil {
					writeEngineError(w, err)
					return pgx.ErrTxCommitRollback
				}
			}
			if newStart.After(newEnd) {
				writeEngineError(w, calendar.ValidationError{Code: calendar.CodeInvalidRange, Message: "start date must not be after end date"})
				return pgx.ErrTxCommitRollback
			}
			if req.FeeAmount != "" {
				d, err := decimal.NewFromString(req.FeeAmount)
				if err != nil || d.LessThanOrEqual(decimal.Zero) {
					api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "feeAmount must be a positive decimal")
					return pgx.ErrTxCommitRollback
				}
				newFee = d.String()
			}
		}

		monthKey := time.Now().UTC().Format("2006-01")
		usage := Usage{}
		if next == StatusConfirmed {
			// Locks the usage row until commit.
			count, err := venue.ConfirmedThisMonth(r.Context(), tx, b.VenueID, monthKey)
			if err != nil {
				return err
			}
			usage.ConfirmedThisMonth = count
		}

		out, err := AttemptTransition(TransitionInput{
			Current:           b.Status,
			Proposed:          next,
			Actor:             Actor{Role: Role(actor.Role), VenueID: actor.VenueID},
			OwnerVenueID:      b.VenueID,
			Quota:             quota,
			Usage:             usage,
			ModificationsUsed: b.ModificationsUsed,
			TermEdit:          termEdit,
		})
		if err != nil {
			if !writeEngineError(w, err) {
				api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
			}
			return pgx.ErrTxCommitRollback
		}

		if termEdit {
			if err := UpdateTerms(r.Context(), tx, b.ID, newStart, newEnd, newFee, out.ConsumesModification); err != nil {
				return err
			}
		}
		if out.Status != b.Status {
			if err := UpdateStatus(r.Context(), tx, b.ID, out.Status); err != nil {
				return err
			}
		}

		resp = map[string]any{"status": out.Status}

		if out.MaterializeResidency {
			weeks, err := calendar.PartitionWeeks(newStart, newEnd, residency.AnchorWeekday)
			if err != nil {
				writeEngineError(w, err)
				return pgx.ErrTxCommitRollback
			}
			res, err := residency.Insert(r.Context(), tx, b.ID, b.VenueID, b.ArtistID, newStart, newEnd)
			if err != nil {
				return err
			}
			if err := residency.ReplaceWeeks(r.Context(), tx, res.ID, weeks); err != nil {
				return err
			}
			if err := venue.IncrementConfirmed(r.Context(), tx, b.VenueID, monthKey); err != nil {
				return err
			}
			resp["residencyId"] = res.ID
			resp["weeks"] = len(weeks)
		}

		who := actorLabel(actor)
		bookingID := b.ID
		_ = audit.Insert(r.Context(), tx, b.VenueID, &bookingID, "STATUS_CHANGED", who, map[string]any{"from": b.Status, "to": out.Status, "termEdit": termEdit})
		_ = timeline.Insert(r.Context(), tx, b.ID, "STATUS_CHANGED", "Status changed", who, time.Now(), map[string]any{"from": b.Status, "to": out.Status})

		return nil
	})

	if err != nil {
		// pgx.ErrTxCommitRollback means the response was already written.
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.getScoped(r, actor, id); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	entries, err := timeline.ListByBooking(r.Context(), h.DB, id)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": entries})
}

func (h Handlers) getScoped(r *http.Request, actor *api.Actor, id string) (*Request, error) {
	if actor.Role == string(RoleVenue) {
		return h.Bookings.GetByID(r.Context(), actor.VenueID, id)
	}
	// Artists and admins are not venue-scoped.
	const q = `
SELECT ` + requestColumns + `
FROM booking_requests
WHERE id = $1
`
	return scanRequest(h.DB.QueryRow(r.Context(), q, id))
}

func withLabel(b Request, lang string) map[string]any {
	return map[string]any{
		"booking":     b,
		"statusLabel": DisplayLabel(string(b.Status), lang),
	}
}

func langFrom(r *http.Request) string {
	lang := strings.TrimSpace(r.URL.Query().Get("lang"))
	if lang == "" {
		return "en"
	}
	return lang
}

func actorLabel(a *api.Actor) string {
	if a.Role == string(RoleVenue) {
		return "venue:" + a.VenueID
	}
	return a.Role
}

func newDisplayID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return "BK-" + strings.ToUpper(hex.EncodeToString(b[:]))
}
