package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hilthontt/personnel/internal/infrastructure/json"
)

const checkTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	startTime time.Time
	healthy   atomic.Bool
	checks    map[string]Check
}

func NewHandler(checks map[string]Check) *Handler {
	h := &Handler{
		startTime: time.Now(),
		checks:    checks,
	}
	h.healthy.Store(true)
	return h
}

// SetHealthy flips liveness, e.g. while shutting down.
func (h *Handler) SetHealthy(healthy bool) {
	h.healthy.Store(healthy)
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the liveness of the API, including uptime and current timestamp
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Failure      503 {object} healthResponse "Service is unhealthy"
// @Router       /health [get]
// @Router       /healthz [get]
// @Router       /live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if !h.healthy.Load() {
		json.Write(w, http.StatusServiceUnavailable, h.response("unhealthy", nil))
		return
	}

	json.Write(w, http.StatusOK, h.response("ok", nil))
}

// GetReady godoc
// @Summary      Readiness check
// @Description  Checks every dependency (MongoDB, RabbitMQ, Redis) and reports their status
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "All dependencies reachable"
// @Failure      503 {object} healthResponse "At least one dependency unreachable"
// @Router       /ready [get]
func (h *Handler) GetReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	if !h.healthy.Load() {
		status = http.StatusServiceUnavailable
	}

	if status != http.StatusOK {
		json.Write(w, status, h.response("unhealthy", results))
		return
	}
	json.Write(w, status, h.response("ok", results))
}

func (h *Handler) response(status string, checks map[string]string) healthResponse {
	return healthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	}
}
