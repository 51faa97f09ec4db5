// Package http exposes the pairxl matching and reconciliation service
// over a chi router with JSON request/response handling via render.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pairxl/internal/config"
	"pairxl/internal/infrastructure"
	"pairxl/internal/middleware"
	"pairxl/internal/reconcile"
)

// NewRouter assembles the middleware chain and API routes.
func NewRouter(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, service *reconcile.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Instrument(metrics))
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	matchHandler := NewMatchHandler(logger, metrics)
	reconcileHandler := NewReconcileHandler(service, cfg, logger, metrics)
	healthHandler := NewHealthHandler(logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/match", matchHandler.Match)
		r.Post("/reconcile", reconcileHandler.Reconcile)
		r.Get("/healthz", healthHandler.Health)
		r.Get("/version", healthHandler.Version)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
