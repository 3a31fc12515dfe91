package api

import (
	"net/http"
	"strings"
	"time"

	"stagebook/internal/auth"
	"stagebook/internal/venue"
	"stagebook/pkg/config"
)

// SessionAuth validates actor session tokens.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// In dev, if Authorization is missing, it falls back to X-Venue-Domain /
// X-Actor-Role headers to keep local testing simple.
func SessionAuth(cfg config.Config, venues *venue.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				sess, err := auth.VerifySessionToken(token, cfg.SessionSecret, time.Now())
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
					return
				}

				actor, err := actorFromSession(r, venues, sess)
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown venue")
					return
				}

				next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
				return
			}

			// Dev fallback
			if cfg.AppEnv != "prod" {
				if actor := devActor(r, venues); actor != nil {
					next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
					return
				}
			}

			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		})
	}
}

func actorFromSession(r *http.Request, venues *venue.Repository, sess *auth.Session) (*Actor, error) {
	switch sess.Role {
	case "venue":
		v, err := venues.FindByDomain(r.Context(), sess.Subject)
		if err != nil {
			return nil, err
		}
		return &Actor{Role: "venue", VenueID: v.ID, PlanTier: v.Plan}, nil
	case "artist":
		return &Actor{Role: "artist", ArtistID: sess.Subject}, nil
	default:
		return &Actor{Role: "admin"}, nil
	}
}

// devActor builds an actor from plain headers so local testing works without
// a token issuer. Unknown venue domains are bootstrapped on the free plan.
func devActor(r *http.Request, venues *venue.Repository) *Actor {
	switch strings.TrimSpace(r.Header.Get("X-Actor-Role")) {
	case "admin":
		return &Actor{Role: "admin"}
	case "artist":
		id := strings.TrimSpace(r.Header.Get("X-Actor-ID"))
		if id == "" {
			return nil
		}
		return &Actor{Role: "artist", ArtistID: id}
	}

	domain := strings.TrimSpace(r.Header.Get("X-Venue-Domain"))
	if domain == "" {
		return nil
	}
	v, err := venues.FindByDomain(r.Context(), domain)
	if err != nil {
		v, err = venues.Upsert(r.Context(), domain, domain, "free")
		if err != nil {
			return nil
		}
	}
	return &Actor{Role: "venue", VenueID: v.ID, PlanTier: v.Plan}
}
