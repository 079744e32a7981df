package bets

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/birreros/porra/internal/domain/model"
)

// FutbolPayload is an incoming matchday prediction.
type FutbolPayload struct {
	Matches   []model.Goals `json:"matches"`
	Questions []string      `json:"questions"`
}

// equalFutbolBet reports whether a stored matchday prediction and an
// incoming payload pick the same scorelines and answers.
func equalFutbolBet(prev model.FutbolBet, p FutbolPayload) bool {
	return cmp.Equal(prev.Matches, p.Matches, cmpopts.EquateEmpty()) &&
		joined(prev.Questions) == joined(p.Questions)
}

// SubmitJornada records a participant's prediction for a matchday. An
// identical resubmission refreshes the timestamp without touching the
// history; a changed pick, or the same pick crossing the deadline,
// appends an audit entry. The returned entry is nil when none was
// appended.
func SubmitJornada(s model.State, jornadaID, name string, p FutbolPayload, at time.Time, late bool) (model.State, *model.FutbolAudit) {
	next := s.Clone()
	f := next.EnsureFutbol()

	prev, had := s.FutbolBetFor(jornadaID, name)
	ts := at
	bet := model.FutbolBet{
		Matches:     append([]model.Goals(nil), p.Matches...),
		Questions:   append([]string(nil), p.Questions...),
		SubmittedAt: &ts,
		Late:        late,
		AdminEdited: had && prev.AdminEdited,
	}
	storeFutbolBet(f, jornadaID, name, bet)

	if had && equalFutbolBet(prev, p) && prev.Late == late {
		return next, nil
	}
	audit := model.FutbolAudit{
		ID:        uuid.NewString(),
		TS:        at,
		Matches:   append([]model.Goals(nil), p.Matches...),
		Questions: append([]string(nil), p.Questions...),
		Late:      late,
	}
	if f.BetHistory == nil {
		f.BetHistory = map[string]map[string][]model.FutbolAudit{}
	}
	if f.BetHistory[jornadaID] == nil {
		f.BetHistory[jornadaID] = map[string][]model.FutbolAudit{}
	}
	f.BetHistory[jornadaID][name] = append(f.BetHistory[jornadaID][name], audit)
	return next, &audit
}

// AdminEditJornada records a matchday prediction on a participant's
// behalf. Admin edits replace the stored bet and mark it, but leave the
// history alone.
func AdminEditJornada(s model.State, jornadaID, name string, p FutbolPayload, at time.Time, late bool) model.State {
	next := s.Clone()
	f := next.EnsureFutbol()
	ts := at
	storeFutbolBet(f, jornadaID, name, model.FutbolBet{
		Matches:     append([]model.Goals(nil), p.Matches...),
		Questions:   append([]string(nil), p.Questions...),
		SubmittedAt: &ts,
		Late:        late,
		AdminEdited: true,
	})
	return next
}

func storeFutbolBet(f *model.FutbolState, jornadaID, name string, bet model.FutbolBet) {
	if f.Bets == nil {
		f.Bets = map[string]map[string]model.FutbolBet{}
	}
	if f.Bets[jornadaID] == nil {
		f.Bets[jornadaID] = map[string]model.FutbolBet{}
	}
	f.Bets[jornadaID][name] = bet
}

// SaveJornada creates or replaces a matchday definition and its question
// sheet. New matchdays are appended to the display order.
func SaveJornada(s model.State, j model.Jornada, questions []string) model.State {
	next := s.Clone()
	f := next.EnsureFutbol()
	if f.Jornadas == nil {
		f.Jornadas = map[string]model.Jornada{}
	}
	if j.Name == "" {
		j.Name = j.ID
	}
	f.Jornadas[j.ID] = j
	found := false
	for _, id := range f.Order {
		if id == j.ID {
			found = true
			break
		}
	}
	if !found {
		f.Order = append(f.Order, j.ID)
	}
	if f.Questions == nil {
		f.Questions = map[string][]string{}
	}
	f.Questions[j.ID] = append([]string(nil), questions...)
	return next
}

// DeleteJornada removes a matchday and everything keyed by it: bets,
// results, questions, window and reveal overrides. Bet history is kept
// as a record of what was submitted.
func DeleteJornada(s model.State, jornadaID string) model.State {
	next := s.Clone()
	f := next.Futbol
	if f == nil {
		return next
	}
	delete(f.Jornadas, jornadaID)
	order := f.Order[:0]
	for _, id := range f.Order {
		if id != jornadaID {
			order = append(order, id)
		}
	}
	f.Order = order
	delete(f.Questions, jornadaID)
	delete(f.Results, jornadaID)
	delete(f.Bets, jornadaID)
	delete(f.BetsWindow, jornadaID)
	delete(f.BetsReveal, jornadaID)
	return next
}

// SetJornadaResult publishes or replaces the official outcome of a
// matchday. Scorelines with a side left blank stay blank; they are never
// coerced to zero.
func SetJornadaResult(s model.State, jornadaID string, res model.FutbolResult) model.State {
	next := s.Clone()
	f := next.EnsureFutbol()
	if f.Results == nil {
		f.Results = map[string]*model.FutbolResult{}
	}
	stored := model.FutbolResult{
		Matches:  append([]model.Goals(nil), res.Matches...),
		QAnswers: append([]string(nil), res.QAnswers...),
	}
	f.Results[jornadaID] = &stored
	return next
}

// SetJornadaWindow overrides the submission window of a matchday.
func SetJornadaWindow(s model.State, jornadaID string, mode WindowMode) model.State {
	next := s.Clone()
	f := next.EnsureFutbol()
	if f.BetsWindow == nil {
		f.BetsWindow = map[string]model.Window{}
	}
	setWindow(f.BetsWindow, jornadaID, mode)
	return next
}

// SetJornadaReveal forces other participants' matchday bets visible
// before the window closes.
func SetJornadaReveal(s model.State, jornadaID string, show bool) model.State {
	next := s.Clone()
	f := next.EnsureFutbol()
	if f.BetsReveal == nil {
		f.BetsReveal = map[string]model.Reveal{}
	}
	f.BetsReveal[jornadaID] = model.Reveal{ForceShow: show}
	return next
}
