// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/birreros/porra/internal/domain/bets"
	"github.com/birreros/porra/internal/domain/model"
)

// BetsDependencies defines the interface for bet submission.
type BetsDependencies interface {
	SubmitRaceBet(ctx context.Context, eventKey, name string, p bets.RacePayload) (*model.RaceAudit, error)
	AdminEditRaceBet(ctx context.Context, eventKey, name string, p bets.RacePayload, late bool) (*model.RaceAudit, error)
	SubmitJornadaBet(ctx context.Context, jornadaID, name string, p bets.FutbolPayload) (*model.FutbolAudit, error)
	AdminEditJornadaBet(ctx context.Context, jornadaID, name string, p bets.FutbolPayload, late bool) error
}

// BetsHandler handles bet submissions.
type BetsHandler struct {
	deps BetsDependencies
}

// NewBetsHandler creates a new bets handler.
func NewBetsHandler(deps BetsDependencies) *BetsHandler {
	return &BetsHandler{deps: deps}
}

// betRequest mirrors the POST /bets schema. Game selects which of the
// prediction blocks applies; Late is only honored on admin edits.
type betRequest struct {
	Game        string `json:"game"`
	Event       string `json:"event"`
	Participant string `json:"participant"`
	Admin       bool   `json:"admin,omitempty"`
	Late        bool   `json:"late,omitempty"`

	Pole    string   `json:"pole,omitempty"`
	Podium  []string `json:"podium,omitempty"`
	Answers []string `json:"q,omitempty"`

	Matches   []model.Goals `json:"matches,omitempty"`
	Questions []string      `json:"questions,omitempty"`
}

func (b betRequest) validate() error {
	switch {
	case strings.TrimSpace(b.Event) == "":
		return errors.New("missing event")
	case strings.TrimSpace(b.Participant) == "":
		return errors.New("missing participant")
	case b.Game != "f1" && b.Game != "futbol":
		return errors.New("game must be f1 or futbol")
	}
	return nil
}

type betResponse struct {
	Status   string `json:"status"`
	Recorded bool   `json:"recorded"`
	AuditID  string `json:"auditId,omitempty"`
}

// HandlePostBet handles POST /bets.
func (h *BetsHandler) HandlePostBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	var req betRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	resp := betResponse{Status: "ok"}
	switch req.Game {
	case "f1":
		payload := bets.RacePayload{Pole: req.Pole, Podium: req.Podium, Answers: req.Answers}
		var audit *model.RaceAudit
		var err error
		if req.Admin {
			audit, err = h.deps.AdminEditRaceBet(r.Context(), req.Event, req.Participant, payload, req.Late)
		} else {
			audit, err = h.deps.SubmitRaceBet(r.Context(), req.Event, req.Participant, payload)
		}
		if err != nil {
			translateError(w, err)
			return
		}
		if audit != nil {
			resp.Recorded = true
			resp.AuditID = audit.ID
		}
	case "futbol":
		payload := bets.FutbolPayload{Matches: req.Matches, Questions: req.Questions}
		if req.Admin {
			if err := h.deps.AdminEditJornadaBet(r.Context(), req.Event, req.Participant, payload, req.Late); err != nil {
				translateError(w, err)
				return
			}
		} else {
			audit, err := h.deps.SubmitJornadaBet(r.Context(), req.Event, req.Participant, payload)
			if err != nil {
				translateError(w, err)
				return
			}
			if audit != nil {
				resp.Recorded = true
				resp.AuditID = audit.ID
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
