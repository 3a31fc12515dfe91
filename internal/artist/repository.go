package artist

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Format is a performance offering venues book against: a show concept with
// a base fee and duration.
type Format struct {
	ID              string    `json:"id"`
	ArtistID        string    `json:"artistId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	BaseFee         string    `json:"baseFee"`
	Currency        string    `json:"currency"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) UpsertFormat(ctx context.Context, f *Format) (*Format, error) {
	const q = `
INSERT INTO formats (artist_id, title, description, base_fee, currency, duration_minutes)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (artist_id, title) DO UPDATE SET
  description = EXCLUDED.description,
  base_fee = EXCLUDED.base_fee,
  currency = EXCLUDED.currency,
  duration_minutes = EXCLUDED.duration_minutes,
  updated_at = NOW()
RETURNING id, artist_id, title, COALESCE(description,''), base_fee::text, currency, duration_minutes, created_at, updated_at
`
	out := &Format{}
	if err := r.db.QueryRow(ctx, q,
		f.ArtistID, f.Title, f.Description, f.BaseFee, f.Currency, f.DurationMinutes,
	).Scan(
		&out.ID, &out.ArtistID, &out.Title, &out.Description, &out.BaseFee, &out.Currency, &out.DurationMinutes,
		&out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetFormat(ctx context.Context, id string) (*Format, error) {
	const q = `
SELECT id, artist_id, title, COALESCE(description,''), base_fee::text, currency, duration_minutes, created_at, updated_at
FROM formats
WHERE id = $1
`
	out := &Format{}
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&out.ID, &out.ArtistID, &out.Title, &out.Description, &out.BaseFee, &out.Currency, &out.DurationMinutes,
		&out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ListFormats(ctx context.Context, artistID string) ([]Format, error) {
	const q = `
SELECT id, artist_id, title, COALESCE(description,''), base_fee::text, currency, duration_minutes, created_at, updated_at
FROM formats
WHERE ($1 = '' OR artist_id = $1)
ORDER BY updated_at DESC
`
	rows, err := r.db.Query(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Format
	for rows.Next() {
		var f Format
		if err := rows.Scan(
			&f.ID, &f.ArtistID, &f.Title, &f.Description, &f.BaseFee, &f.Currency, &f.DurationMinutes,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) GetArtist(ctx context.Context, id string) (*Artist, error) {
	const q = `
SELECT id, name, COALESCE(bio,''), created_at
FROM artists
WHERE id = $1
`
	a := &Artist{}
	if err := r.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}
