package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stagebook/internal/api"
	"stagebook/internal/artist"
	"stagebook/internal/booking"
	"stagebook/internal/residency"
	"stagebook/internal/venue"
	"stagebook/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	venuesRepo := venue.NewRepository(deps.DB)
	artistsRepo := artist.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)
	residenciesRepo := residency.NewRepository(deps.DB)

	artistHandlers := artist.Handlers{Repo: artistsRepo}
	bookingHandlers := booking.Handlers{
		DB:       deps.DB,
		Bookings: bookingsRepo,
		Venues:   venuesRepo,
		Artists:  artistsRepo,
	}
	residencyHandlers := residency.Handlers{
		DB:          deps.DB,
		Residencies: residenciesRepo,
		Venues:      venuesRepo,
		Artists:     artistsRepo,
	}

	r.Route("/v1", func(r chi.Router) {
		// Session-scoped APIs (venue, artist, admin actors)
		r.Group(func(r chi.Router) {
			r.Use(api.SessionAuth(deps.Cfg, venuesRepo))

			// Artist format catalogue
			r.Get("/formats", artistHandlers.ListFormats)
			r.Get("/formats/{id}", artistHandlers.GetFormat)
			r.Put("/formats", artistHandlers.PutFormat)

			// Booking requests and the transition workflow
			r.Post("/bookings", bookingHandlers.Create)
			r.Get("/bookings", bookingHandlers.List)
			r.Get("/bookings/{id}", bookingHandlers.Get)
			r.Get("/bookings/{id}/events", bookingHandlers.Events)
			r.Patch("/bookings/{id}/status", bookingHandlers.PatchStatus)

			// Residencies and their week schedule
			r.Get("/residencies", residencyHandlers.List)
			r.Get("/residencies/{id}", residencyHandlers.Get)
			r.Patch("/residencies/{id}/dates", residencyHandlers.PatchDates)
		})

		// Public roadmap, served to a separate frontend domain.
		r.Route("/roadmap", func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.RoadmapAllowedOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				MaxAgeSeconds:  600,
			}))
			r.Get("/{domain}", residencyHandlers.Roadmap)
		})
	})

	return r
}
