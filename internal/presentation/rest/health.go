package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/postgres"
)

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler.
func NewHealthHandler(pool *pgxpool.Pool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pool: pool, logger: logger}
}

// RegisterRoutes attaches health-check routes to the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "contract-engine",
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := postgres.HealthCheck(r.Context(), h.pool); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": "contract-engine",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": "contract-engine",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
