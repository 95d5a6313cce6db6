/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend tooling

ROUTE GROUPS:
  /api/dates/*      Date arithmetic
  /api/ranges/*     Range construction, navigation, derived figures
  /api/holidays     Holiday management
  /api/schedules/*  Named schedule definitions

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Date arithmetic
		r.Route("/dates", func(r chi.Router) {
			r.Get("/today", h.Today)
			r.Post("/shift", h.ShiftDate)
			r.Get("/between", h.Between)
		})

		// Range construction and navigation
		r.Route("/ranges", func(r chi.Router) {
			r.Post("/", h.BuildRange)
			r.Post("/navigate", h.NavigateRange)
			r.Get("/schedule", h.Schedule)
			r.Get("/workdays", h.Workdays)
			r.Get("/proration", h.Proration)
		})

		// Holidays
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
		})

		// Named schedule definitions
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)
			r.Get("/{id}/period", h.GetSchedulePeriod)
		})
	})

	return r
}
