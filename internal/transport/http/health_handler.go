package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"pairxl/pkg/contracts"
	v1 "pairxl/pkg/contracts/api/v1"
)

// HealthHandler answers liveness and version probes.
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger.With(slog.String("handler", "health"))}
}

// Health handles GET /api/v1/healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, v1.HealthResponse{
		Status:  "healthy",
		Version: contracts.Version,
	})
}

// Version handles GET /api/v1/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetBuildInfo())
}
