package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/items-api/internal/storage/db"
)

const readinessTimeout = 2 * time.Second

type healthHandler struct {
	logger        *slog.Logger
	healthChecker db.HealthChecker
}

func newHealthHandler(logger *slog.Logger, healthChecker db.HealthChecker) *healthHandler {
	return &healthHandler{
		logger:        logger,
		healthChecker: healthChecker,
	}
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.logger, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *healthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if ok, err := h.healthChecker.IsHealthy(ctx); !ok || err != nil {
		res := HealthResponse{Status: "unavailable"}
		if err != nil {
			res.Error = err.Error()
		}
		h.logger.WarnContext(r.Context(), "readiness check failed", slog.Any("error", err))
		writeJSON(w, r, h.logger, http.StatusServiceUnavailable, res)
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, HealthResponse{Status: "ready"})
}
