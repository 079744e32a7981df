// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/birreros/porra/internal/domain/standings"
)

// StandingsDependencies defines the interface for standings queries.
type StandingsDependencies interface {
	F1Standings(ctx context.Context, scope string) (standings.Table, error)
	FutbolStandings(ctx context.Context, scope string) ([]standings.FutbolRow, error)
	Championships(ctx context.Context) []standings.ChampionshipRow
}

// StandingsHandler handles standings requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

type futbolStandingsResponse struct {
	Rows []standings.FutbolRow `json:"rows"`
}

// HandleStandings handles GET /standings?game={f1|futbol}&scope={all|key}.
func (h *StandingsHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = standings.ScopeAll
	}

	switch r.URL.Query().Get("game") {
	case "", "f1":
		table, err := h.deps.F1Standings(r.Context(), scope)
		if err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, table)
	case "futbol":
		rows, err := h.deps.FutbolStandings(r.Context(), scope)
		if err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, futbolStandingsResponse{Rows: rows})
	default:
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("game must be f1 or futbol"))
	}
}

// HandleChampionships handles GET /championships.
func (h *StandingsHandler) HandleChampionships(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Championships(r.Context()))
}
