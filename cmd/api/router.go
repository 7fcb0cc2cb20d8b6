package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/unbounded/waitlist/internal/config"
	"github.com/unbounded/waitlist/internal/handler"
	"github.com/unbounded/waitlist/internal/middleware"
	"github.com/unbounded/waitlist/internal/ui"
)

// handlers groups everything setupRouter mounts.
type handlers struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	metrics  *handler.MetricsHandler
	pages    *handler.PageHandler
	waitlist *handler.WaitlistHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(h handlers, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	dev := cfg.IsDevelopment()

	// Operational endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: dev}))
		r.Get("/healthz", h.health.Healthz)
		r.Get("/readyz", h.health.Readyz)
		r.Get("/metrics", h.metrics.Metrics)
	})

	// HTML pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.Security(middleware.SecurityConfig{
			IsDevelopment:         dev,
			ContentSecurityPolicy: middleware.PageContentSecurityPolicy(cfg.APIBase()),
		}))
		r.Get("/", h.pages.Landing)
		r.Get("/waitlist", h.pages.Waitlist)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: dev, Cacheable: true}))
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(ui.FS())))
	})

	// Signup API
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetFrontendOrigins()

	r.Group(func(r chi.Router) {
		r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: dev}))
		r.Use(middleware.CORS(corsCfg))
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

		for _, path := range []string{"/waitlist", "/api/waitlist"} {
			r.Post(path, h.waitlist.Join)
			// Answered by the CORS middleware; registered so the route matches.
			r.Options(path, noContent)
		}
	})

	// 404 and 405 handlers
	r.NotFound(h.base.NotFound)
	r.MethodNotAllowed(h.base.MethodNotAllowed)

	return r
}

func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
