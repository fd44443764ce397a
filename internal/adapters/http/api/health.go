package api

import (
	"context"
	"net/http"

	"github.com/okian/sofirank/internal/domain/types"
)

// StatsProvider describes the loaded catalog.
type StatsProvider interface {
	Stats(ctx context.Context) (types.Stats, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps StatsProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps StatsProvider) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth handles GET /healthz requests. It reports 503 until the
// catalog is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if _, err := h.deps.Stats(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "loading"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
