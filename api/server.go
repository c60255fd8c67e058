/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions:
  the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  unique ID per request for tracing
  2. Recoverer:  panic recovery (500 instead of crash)
  3. requestLog: zerolog request logging
  4. CORS:       cross-origin requests for the back-office frontend

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/justboats/charter-engine/logger"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/recompute", h.RecomputePricing)
			r.Post("/propagate", h.PropagatePricing)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.SaveEntry)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.ListBookings)
			r.Post("/", h.SaveBooking)
			r.Get("/pending", h.ListPendingBookings)
			r.Get("/{id}/owner", h.GetOwnerSummary)
			r.Post("/{id}/promote", h.PromoteBooking)
		})
	})

	return r
}

// requestLog logs each request with method, path, status, and duration.
func requestLog(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
