// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/birreros/porra/internal/domain/stats"
)

// StatsDependencies defines the interface for statistics queries.
type StatsDependencies interface {
	Statistics(ctx context.Context) stats.Bundle
}

// StatsHandler handles statistics requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Statistics(r.Context()))
}
