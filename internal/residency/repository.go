package residency

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/calendar"
)

// AnchorWeekday is the fixed weekday residency weeks are aligned to.
const AnchorWeekday = time.Sunday

type Residency struct {
	ID        string        `json:"id"`
	BookingID string        `json:"bookingId"`
	VenueID   string        `json:"venueId"`
	ArtistID  string        `json:"artistId"`
	StartDate calendar.Date `json:"startDate"`
	EndDate   calendar.Date `json:"endDate"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const residencyColumns = `
id, booking_id, venue_id, artist_id, start_date::text, end_date::text, created_at, updated_at`

func scanResidency(row pgx.Row) (*Residency, error) {
	var res Residency
	var start, end string
	if err := row.Scan(
		&res.ID, &res.BookingID, &res.VenueID, &res.ArtistID,
		&start, &end, &res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if res.StartDate, err = calendar.ParseDate(start); err != nil {
		return nil, err
	}
	if res.EndDate, err = calendar.ParseDate(end); err != nil {
		return nil, err
	}
	return &res, nil
}

func Insert(ctx context.Context, tx pgx.Tx, bookingID, venueID, artistID string, start, end calendar.Date) (*Residency, error) {
	const q = `
INSERT INTO residencies (booking_id, venue_id, artist_id, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + residencyColumns
	return scanResidency(tx.QueryRow(ctx, q, bookingID, venueID, artistID, start.String(), end.String()))
}

// GetForUpdate locks the residency row while its date range is being edited.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Residency, error) {
	const q = `
SELECT ` + residencyColumns + `
FROM residencies
WHERE id = $1
FOR UPDATE
`
	return scanResidency(tx.QueryRow(ctx, q, id))
}

func UpdateDates(ctx context.Context, tx pgx.Tx, id string, start, end calendar.Date) error {
	const q = `
UPDATE residencies
SET start_date = $1, end_date = $2, updated_at = NOW()
WHERE id = $3
`
	_, err := tx.Exec(ctx, q, start.String(), end.String(), id)
	return err
}

// ReplaceWeeks recomputes a residency's week rows wholesale. Weeks are a
// pure function of the date range, so on any range change the old rows are
// discarded rather than patched.
func ReplaceWeeks(ctx context.Context, tx pgx.Tx, residencyID string, weeks []calendar.Week) error {
	if _, err := tx.Exec(ctx, `DELETE FROM residency_weeks WHERE residency_id = $1`, residencyID); err != nil {
		return err
	}
	const q = `
INSERT INTO residency_weeks (residency_id, sequence, start_date, end_date)
VALUES ($1, $2, $3, $4)
`
	for i, w := range weeks {
		if _, err := tx.Exec(ctx, q, residencyID, i, w.Start.String(), w.End.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Residency, error) {
	const q = `
SELECT ` + residencyColumns + `
FROM residencies
WHERE id = $1
`
	return scanResidency(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) ListByVenue(ctx context.Context, venueID string) ([]Residency, error) {
	const q = `
SELECT ` + residencyColumns + `
FROM residencies
WHERE venue_id = $1
ORDER BY start_date ASC
`
	rows, err := r.db.Query(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Residency
	for rows.Next() {
		res, err := scanResidency(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *Repository) ListWeeks(ctx context.Context, residencyID string) ([]calendar.Week, error) {
	const q = `
SELECT start_date::text, end_date::text
FROM residency_weeks
WHERE residency_id = $1
ORDER BY sequence ASC
`
	rows, err := r.db.Query(ctx, q, residencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []calendar.Week
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		var w calendar.Week
		if w.Start, err = calendar.ParseDate(start); err != nil {
			return nil, err
		}
		if w.End, err = calendar.ParseDate(end); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
