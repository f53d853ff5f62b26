/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontends
  5. httprate:   Per-IP request limit on /api

ROUTE GROUPS:
  /api/units/*          Unit decoding and arithmetic
  /api/periods/*        Period decoding, containment, overlap, allocation
  /api/catalog/*        Named-period catalog
  /api/presets/*        Preset catalogs
  /healthz              Liveness probe (not rate limited)

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// RouterOptions configures the middleware around the API routes.
type RouterOptions struct {
	AllowedOrigins []string
	// RateLimit is the number of requests per minute allowed from one IP.
	// Zero disables limiting.
	RateLimit int
}

// DefaultRouterOptions matches the local development setup.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		RateLimit:      600,
	}
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.Limit(opts.RateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusTooManyRequests, "Rate limit exceeded", nil)
				}),
			))
		}

		// Unit routes
		r.Route("/units", func(r chi.Router) {
			r.Post("/parse", h.ParseUnit)
			r.Post("/plus", h.PlusUnit)
			r.Post("/convert", h.ConvertQuarter)
			r.Post("/to-date", h.UnitsToDate)
		})

		// Period routes
		r.Route("/periods", func(r chi.Router) {
			r.Post("/parse", h.ParsePeriod)
			r.Post("/contains", h.ContainsUnit)
			r.Post("/overlap", h.Overlap)
			r.Post("/units", h.ListUnits)
			r.Post("/permutations", h.ListPermutations)
			r.Post("/allocate", h.Allocate)
		})

		// Catalog routes
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.ListNamedPeriods)
			r.Post("/", h.CreateNamedPeriod)
			r.Get("/overlapping", h.FindOverlapping)
			r.Get("/{id}", h.GetNamedPeriod)
			r.Delete("/{id}", h.DeleteNamedPeriod)
		})

		// Preset routes
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", h.ListPresets)
			r.Post("/load", h.LoadPreset)
		})
	})

	return r
}
