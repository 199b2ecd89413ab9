/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROLE GATE:
  Write routes are wrapped in requireRole (roles.go). Reads are open to
  viewers; milestone writes need editor; plan deletion needs admin.

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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RoleHeader, "X-User-Id"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Plan routes
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.With(requireRole(RoleEditor)).Post("/", h.CreatePlan)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetPlan)
				r.With(requireRole(RoleAdmin)).Delete("/", h.DeletePlan)
				r.With(requireRole(RoleEditor)).Put("/dates", h.UpdatePlanDates)

				r.With(requireRole(RoleEditor)).Post("/analyze", h.AnalyzePlan)
				r.Get("/snapshots", h.ListSnapshots)
				r.Post("/validate-gaps", h.ValidateGaps)
				r.Get("/history", h.ListHistory)
			})
		})

		// Holiday routes
		r.Get("/holidays", h.ListHolidays)

		// Demo data
		r.With(requireRole(RoleEditor)).Post("/seed", h.SeedDemo)
	})

	return r
}
