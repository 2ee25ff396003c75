package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Gi2009/cod-back/internal/logger"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Health serves the liveness probe.
type Health struct {
	db      HealthChecker
	timeout time.Duration
	responder
}

func NewHealth(db HealthChecker, logger *logger.Logger) *Health {
	return &Health{db: db, timeout: 2 * time.Second, responder: newResponder(logger)}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database ping failed", "error", err.Error())
		h.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	h.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
