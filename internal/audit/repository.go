package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// Insert records a workflow action in the audit log. Runs inside the same
// transaction as the state change it describes.
func Insert(ctx context.Context, tx pgx.Tx, venueID string, bookingID *string, action, actor string, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (venue_id, booking_id, action, actor, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	_, err := tx.Exec(ctx, q, venueID, bookingID, action, actor, s)
	return err
}
