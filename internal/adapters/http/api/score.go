// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/birreros/porra/internal/domain/scoring"
)

// ScoreDependencies defines the interface for score breakdown queries.
type ScoreDependencies interface {
	RaceBreakdown(ctx context.Context, eventKey, name string) (scoring.RaceScore, []scoring.Item, error)
	JornadaBreakdown(ctx context.Context, jornadaID, name string) (scoring.JornadaScore, error)
}

// ScoreHandler handles per-event score breakdown requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

type raceScoreResponse struct {
	scoring.RaceScore
	Items []scoring.Item `json:"items"`
}

// HandleGetScore handles GET /score/{game}/{event}/{participant}.
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/score/"), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	game, event, name := parts[0], parts[1], parts[2]

	switch game {
	case "f1":
		sc, items, err := h.deps.RaceBreakdown(r.Context(), event, name)
		if err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, raceScoreResponse{RaceScore: sc, Items: items})
	case "futbol":
		sc, err := h.deps.JornadaBreakdown(r.Context(), event, name)
		if err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sc)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
	}
}
