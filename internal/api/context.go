package api

import "context"

// Actor is the authenticated caller attached to the request context. Venue
// actors carry their venue row's id and plan tier; artist and admin actors
// carry a bare subject id.
type Actor struct {
	Role     string // venue, artist, admin
	VenueID  string
	PlanTier string
	ArtistID string
}

type ctxKey string

const ctxKeyActor ctxKey = "actor"

func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, a)
}

func ActorFromContext(ctx context.Context) *Actor {
	v := ctx.Value(ctxKeyActor)
	if v == nil {
		return nil
	}
	a, _ := v.(*Actor)
	return a
}
