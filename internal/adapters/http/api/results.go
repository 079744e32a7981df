// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/birreros/porra/internal/domain/model"
)

// ResultsDependencies defines the interface for result publication.
type ResultsDependencies interface {
	SetRaceResult(ctx context.Context, eventKey string, res model.RaceResult) error
	SetJornadaResult(ctx context.Context, jornadaID string, res model.FutbolResult) error
	SetAdjustment(ctx context.Context, eventKey, name string, delta int) error
}

// ResultsHandler handles result and adjustment publication.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// resultRequest mirrors the POST /results schema.
type resultRequest struct {
	Game  string `json:"game"`
	Event string `json:"event"`

	Pole     string   `json:"pole,omitempty"`
	Podium   []string `json:"podium,omitempty"`
	QAnswers []string `json:"qAnswers,omitempty"`

	Matches []model.Goals `json:"matches,omitempty"`
}

func (r resultRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Event) == "":
		return errors.New("missing event")
	case r.Game != "f1" && r.Game != "futbol":
		return errors.New("game must be f1 or futbol")
	}
	return nil
}

type ackResponse struct {
	Status string `json:"status"`
}

// HandlePostResult handles POST /results.
func (h *ResultsHandler) HandlePostResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	var err error
	switch req.Game {
	case "f1":
		err = h.deps.SetRaceResult(r.Context(), req.Event, model.RaceResult{
			Pole:     req.Pole,
			Podium:   req.Podium,
			QAnswers: req.QAnswers,
		})
	case "futbol":
		err = h.deps.SetJornadaResult(r.Context(), req.Event, model.FutbolResult{
			Matches:  req.Matches,
			QAnswers: req.QAnswers,
		})
	}
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}

// adjustmentRequest mirrors the POST /adjustments schema. Delta zero
// clears the adjustment.
type adjustmentRequest struct {
	Event       string `json:"event"`
	Participant string `json:"participant"`
	Delta       int    `json:"delta"`
}

// HandlePostAdjustment handles POST /adjustments.
func (h *ResultsHandler) HandlePostAdjustment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	var req adjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Event) == "" || strings.TrimSpace(req.Participant) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.SetAdjustment(r.Context(), req.Event, req.Participant, req.Delta); err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}
