package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/calendar"
)

type Request struct {
	ID                string        `json:"id"`
	DisplayID         string        `json:"displayId"`
	VenueID           string        `json:"venueId"`
	ArtistID          string        `json:"artistId"`
	FormatID          string        `json:"formatId"`
	StartDate         calendar.Date `json:"startDate"`
	EndDate           calendar.Date `json:"endDate"`
	FeeAmount         string        `json:"feeAmount"`
	Currency          string        `json:"currency"`
	Status            Status        `json:"status"`
	ModificationsUsed int           `json:"modificationsUsed"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const requestColumns = `
id, display_id, venue_id, artist_id, format_id,
start_date::text, end_date::text, fee_amount::text, currency,
status, modifications_used, created_at, updated_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	var start, end string
	if err := row.Scan(
		&req.ID, &req.DisplayID, &req.VenueID, &req.ArtistID, &req.FormatID,
		&start, &end, &req.FeeAmount, &req.Currency,
		&req.Status, &req.ModificationsUsed, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if req.StartDate, err = calendar.ParseDate(start); err != nil {
		return nil, err
	}
	if req.EndDate, err = calendar.ParseDate(end); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *Repository) Insert(ctx context.Context, req *Request) (*Request, error) {
	const q = `
INSERT INTO booking_requests (display_id, venue_id, artist_id, format_id, start_date, end_date, fee_amount, currency, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + requestColumns
	return scanRequest(r.db.QueryRow(ctx, q,
		req.DisplayID, req.VenueID, req.ArtistID, req.FormatID,
		req.StartDate.String(), req.EndDate.String(), req.FeeAmount, req.Currency, string(req.Status),
	))
}

func (r *Repository) ListByVenue(ctx context.Context, venueID string) ([]Request, error) {
	const q = `
SELECT ` + requestColumns + `
FROM booking_requests
WHERE venue_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, venueID, id string) (*Request, error) {
	const q = `
SELECT ` + requestColumns + `
FROM booking_requests
WHERE venue_id = $1 AND id = $2
`
	return scanRequest(r.db.QueryRow(ctx, q, venueID, id))
}

// GetForUpdate locks the request row for the duration of the transaction so
// the status transition commits against the state it was validated on.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Request, error) {
	const q = `
SELECT ` + requestColumns + `
FROM booking_requests
WHERE id = $1
FOR UPDATE
`
	return scanRequest(tx.QueryRow(ctx, q, id))
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	const q = `
UPDATE booking_requests
SET status = $1, updated_at = NOW()
WHERE id = $2
`
	_, err := tx.Exec(ctx, q, string(next), id)
	return err
}

// UpdateTerms rewrites the request's negotiated terms. When consume is set
// the edit is charged against the request's modification counter (edits to a
// request still in draft are free).
func UpdateTerms(ctx context.Context, tx pgx.Tx, id string, start, end calendar.Date, feeAmount string, consume bool) error {
	const q = `
UPDATE booking_requests
SET start_date = $1, end_date = $2, fee_amount = $3,
    modifications_used = modifications_used + CASE WHEN $4 THEN 1 ELSE 0 END,
    updated_at = NOW()
WHERE id = $5
`
	_, err := tx.Exec(ctx, q, start.String(), end.String(), feeAmount, consume, id)
	return err
}
