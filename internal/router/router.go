// internal/router/router.go
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-trip-planner/internal/api/trips"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TripHandler *trips.HandlerImpl
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	// The UI is a separate origin during development.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", cfg.TripHandler.GetTrips)
			r.Post("/", cfg.TripHandler.CreateTrip)
			r.Get("/state", cfg.TripHandler.GetState)
			r.Get("/events", cfg.TripHandler.StreamEvents)
			r.Get("/pins", cfg.TripHandler.GetMapPins)
			r.Post("/selection", cfg.TripHandler.SelectTrip)
			r.Delete("/selection", cfg.TripHandler.ClearSelection)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", cfg.TripHandler.GetTrip)
				r.Put("/", cfg.TripHandler.UpdateTrip)
				r.Get("/pins", cfg.TripHandler.GetActivityPins)
				r.Get("/share", cfg.TripHandler.ShareTrip)
			})
		})
	})

	return r
}
