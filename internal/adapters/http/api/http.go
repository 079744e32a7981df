// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/birreros/porra/internal/domain/bets"
	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
	"github.com/birreros/porra/internal/domain/standings"
	"github.com/birreros/porra/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations.
	F1Standings(ctx context.Context, scope string) (standings.Table, error)
	FutbolStandings(ctx context.Context, scope string) ([]standings.FutbolRow, error)
	Championships(ctx context.Context) []standings.ChampionshipRow
	Statistics(ctx context.Context) stats.Bundle
	RaceBreakdown(ctx context.Context, eventKey, name string) (scoring.RaceScore, []scoring.Item, error)
	JornadaBreakdown(ctx context.Context, jornadaID, name string) (scoring.JornadaScore, error)
	ExportSnapshot(ctx context.Context) model.State
	Races(ctx context.Context) []model.Race
	Drivers(ctx context.Context) []string
	Jornadas(ctx context.Context) []model.Jornada

	// Write operations.
	SubmitRaceBet(ctx context.Context, eventKey, name string, p bets.RacePayload) (*model.RaceAudit, error)
	AdminEditRaceBet(ctx context.Context, eventKey, name string, p bets.RacePayload, late bool) (*model.RaceAudit, error)
	SubmitJornadaBet(ctx context.Context, jornadaID, name string, p bets.FutbolPayload) (*model.FutbolAudit, error)
	AdminEditJornadaBet(ctx context.Context, jornadaID, name string, p bets.FutbolPayload, late bool) error
	SetRaceResult(ctx context.Context, eventKey string, res model.RaceResult) error
	SetJornadaResult(ctx context.Context, jornadaID string, res model.FutbolResult) error
	SetAdjustment(ctx context.Context, eventKey, name string, delta int) error
	SaveJornada(ctx context.Context, j model.Jornada, questions []string) error
	DeleteJornada(ctx context.Context, jornadaID string) error
	ResetStandings(ctx context.Context)
	ReplaceSnapshot(ctx context.Context, st model.State)
	AddParticipant(ctx context.Context, name string)
	RemoveParticipant(ctx context.Context, name string)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	standingsHandler *StandingsHandler
	statsHandler     *StatsHandler
	scoreHandler     *ScoreHandler
	betsHandler      *BetsHandler
	resultsHandler   *ResultsHandler
	adminHandler     *AdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		standingsHandler: NewStandingsHandler(deps),
		statsHandler:     NewStatsHandler(deps),
		scoreHandler:     NewScoreHandler(deps),
		betsHandler:      NewBetsHandler(deps),
		resultsHandler:   NewResultsHandler(deps),
		adminHandler:     NewAdminHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleStandings, "standings"))
	mux.HandleFunc("/standings/reset", MetricsMiddleware(s.adminHandler.HandleResetStandings, "standings_reset"))
	mux.HandleFunc("/championships", MetricsMiddleware(s.standingsHandler.HandleChampionships, "championships"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score/", MetricsMiddleware(s.scoreHandler.HandleGetScore, "score"))
	mux.HandleFunc("/bets", MetricsMiddleware(s.betsHandler.HandlePostBet, "bets"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandlePostResult, "results"))
	mux.HandleFunc("/adjustments", MetricsMiddleware(s.resultsHandler.HandlePostAdjustment, "adjustments"))
	mux.HandleFunc("/races", MetricsMiddleware(s.adminHandler.HandleRaces, "races"))
	mux.HandleFunc("/drivers", MetricsMiddleware(s.adminHandler.HandleDrivers, "drivers"))
	mux.HandleFunc("/jornadas", MetricsMiddleware(s.adminHandler.HandleJornadas, "jornadas"))
	mux.HandleFunc("/participants", MetricsMiddleware(s.adminHandler.HandleParticipants, "participants"))
	mux.HandleFunc("/export", MetricsMiddleware(s.adminHandler.HandleExport, "export"))
	mux.HandleFunc("/import", MetricsMiddleware(s.adminHandler.HandleImport, "import"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
