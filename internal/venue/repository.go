package venue

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, domain, name, planTier string) (*Venue, error) {
	const q = `
INSERT INTO venues (domain, name, plan, status)
VALUES ($1, $2, $3, 'active')
ON CONFLICT (domain) DO UPDATE SET
  name = EXCLUDED.name,
  status = 'active'
RETURNING id, domain, name, COALESCE(plan,'free'), COALESCE(status,'active'), created_at
`
	v := &Venue{}
	if err := r.db.QueryRow(ctx, q, domain, name, planTier).Scan(
		&v.ID, &v.Domain, &v.Name, &v.Plan, &v.Status, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Repository) FindByDomain(ctx context.Context, domain string) (*Venue, error) {
	const q = `
SELECT id, domain, name, COALESCE(plan,'free'), COALESCE(status,'active'), created_at
FROM venues
WHERE domain = $1
`
	v := &Venue{}
	if err := r.db.QueryRow(ctx, q, domain).Scan(
		&v.ID, &v.Domain, &v.Name, &v.Plan, &v.Status, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Venue, error) {
	const q = `
SELECT id, domain, name, COALESCE(plan,'free'), COALESCE(status,'active'), created_at
FROM venues
WHERE id = $1
`
	v := &Venue{}
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.Domain, &v.Name, &v.Plan, &v.Status, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return v, nil
}

// ConfirmedThisMonth reads the venue's confirmed-event counter for the given
// YYYY-MM bucket, locking the row for the rest of the transaction. The row
// is created on first use so the lock always has something to grab.
//
// The lock is what makes the quota check race-free: two concurrent
// confirmations on the same venue serialize here, and the second one sees
// the first one's increment.
func ConfirmedThisMonth(ctx context.Context, tx pgx.Tx, venueID, monthKey string) (int, error) {
	const seed = `
INSERT INTO venue_usage (venue_id, month, confirmed_count)
VALUES ($1, $2, 0)
ON CONFLICT (venue_id, month) DO NOTHING
`
	if _, err := tx.Exec(ctx, seed, venueID, monthKey); err != nil {
		return 0, err
	}

	const q = `
SELECT confirmed_count
FROM venue_usage
WHERE venue_id = $1 AND month = $2
FOR UPDATE
`
	var count int
	if err := tx.QueryRow(ctx, q, venueID, monthKey).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementConfirmed bumps the monthly counter. Must run in the same
// transaction as the ConfirmedThisMonth read that authorized it.
func IncrementConfirmed(ctx context.Context, tx pgx.Tx, venueID, monthKey string) error {
	const q = `
UPDATE venue_usage
SET confirmed_count = confirmed_count + 1, updated_at = NOW()
WHERE venue_id = $1 AND month = $2
`
	_, err := tx.Exec(ctx, q, venueID, monthKey)
	return err
}
