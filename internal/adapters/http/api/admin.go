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

// AdminDependencies defines the interface for pool administration.
type AdminDependencies interface {
	Races(ctx context.Context) []model.Race
	Drivers(ctx context.Context) []string
	Jornadas(ctx context.Context) []model.Jornada
	SaveJornada(ctx context.Context, j model.Jornada, questions []string) error
	DeleteJornada(ctx context.Context, jornadaID string) error
	ResetStandings(ctx context.Context)
	ExportSnapshot(ctx context.Context) model.State
	ReplaceSnapshot(ctx context.Context, st model.State)
	AddParticipant(ctx context.Context, name string)
	RemoveParticipant(ctx context.Context, name string)
}

// AdminHandler handles pool administration requests.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// HandleResetStandings handles POST /standings/reset.
func (h *AdminHandler) HandleResetStandings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	h.deps.ResetStandings(r.Context())
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}

// HandleRaces handles GET /races.
func (h *AdminHandler) HandleRaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Races(r.Context()))
}

// HandleDrivers handles GET /drivers.
func (h *AdminHandler) HandleDrivers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Drivers(r.Context()))
}

// jornadaRequest mirrors the POST /jornadas schema.
type jornadaRequest struct {
	model.Jornada
	Questions []string `json:"questions,omitempty"`
}

// HandleJornadas handles GET, POST, and DELETE on /jornadas.
func (h *AdminHandler) HandleJornadas(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Jornadas(r.Context()))
	case http.MethodPost:
		var req jornadaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if strings.TrimSpace(req.ID) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing jornada id"))
			return
		}
		if err := h.deps.SaveJornada(r.Context(), req.Jornada, req.Questions); err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing jornada id"))
			return
		}
		if err := h.deps.DeleteJornada(r.Context(), id); err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	}
}

type participantRequest struct {
	Name string `json:"name"`
}

// HandleParticipants handles POST and DELETE on /participants.
func (h *AdminHandler) HandleParticipants(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if r.Method == http.MethodDelete && r.URL.Query().Get("name") != "" {
		req.Name = r.URL.Query().Get("name")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing name"))
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.deps.AddParticipant(r.Context(), req.Name)
	case http.MethodDelete:
		h.deps.RemoveParticipant(r.Context(), req.Name)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}

// HandleExport handles GET /export: the full snapshot with standings
// materialized.
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ExportSnapshot(r.Context()))
}

// HandleImport handles POST /import: replaces the snapshot wholesale.
func (h *AdminHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	var st model.State
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	h.deps.ReplaceSnapshot(r.Context(), st)
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
}
