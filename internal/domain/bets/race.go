package bets

import (
	"time"

	"github.com/google/uuid"

	"github.com/birreros/porra/internal/domain/model"
)

// RacePayload is an incoming pole-game prediction.
type RacePayload struct {
	Pole    string   `json:"pole"`
	Podium  []string `json:"podium"`
	Answers []string `json:"q"`
}

func (p RacePayload) normalized() RacePayload {
	return RacePayload{Pole: p.Pole, Podium: pad(p.Podium), Answers: pad(p.Answers)}
}

// equalRaceBet reports whether a stored prediction and an incoming
// payload pick the same pole, podium, and answers. Submission time and
// the late flag are not part of the comparison.
func equalRaceBet(prev model.RaceBet, p RacePayload) bool {
	return prev.Pole == p.Pole &&
		joined(prev.Podium) == joined(p.Podium) &&
		joined(prev.Answers) == joined(p.Answers)
}

// SubmitRace records a participant's prediction for a race. Resubmitting
// an identical pick refreshes the stored timestamp but appends nothing to
// the history; any material change appends an audit entry. The returned
// audit entry is nil when none was appended.
func SubmitRace(s model.State, eventKey, name string, p RacePayload, at time.Time, late bool) (model.State, *model.RaceAudit) {
	p = p.normalized()
	next := s.Clone()

	prev, had := next.RaceBetFor(eventKey, name)
	ts := at
	bet := model.RaceBet{
		Pole:        p.Pole,
		Podium:      p.Podium,
		Answers:     p.Answers,
		SubmittedAt: &ts,
		Late:        late,
		AdminEdited: had && prev.AdminEdited,
	}
	storeRaceBet(&next, eventKey, name, bet)

	if had && equalRaceBet(prev, p) {
		return next, nil
	}
	audit := model.RaceAudit{
		ID:      uuid.NewString(),
		TS:      at,
		Pole:    p.Pole,
		Podium:  append([]string(nil), p.Podium...),
		Answers: append([]string(nil), p.Answers...),
		Late:    late,
	}
	appendRaceAudit(&next, eventKey, name, audit)
	return next, &audit
}

// AdminEditRace records a prediction on a participant's behalf. Unlike a
// participant's own resubmission, flipping only the late flag is a
// material change here, and the audit entry is marked as admin-made.
func AdminEditRace(s model.State, eventKey, name string, p RacePayload, at time.Time, late bool) (model.State, *model.RaceAudit) {
	p = p.normalized()
	next := s.Clone()

	prev, had := next.RaceBetFor(eventKey, name)
	ts := at
	bet := model.RaceBet{
		Pole:        p.Pole,
		Podium:      p.Podium,
		Answers:     p.Answers,
		SubmittedAt: &ts,
		Late:        late,
		AdminEdited: true,
	}
	storeRaceBet(&next, eventKey, name, bet)

	if had && equalRaceBet(prev, p) && prev.Late == late {
		return next, nil
	}
	audit := model.RaceAudit{
		ID:            uuid.NewString(),
		TS:            at,
		Pole:          p.Pole,
		Podium:        append([]string(nil), p.Podium...),
		Answers:       append([]string(nil), p.Answers...),
		Late:          late,
		EditedByAdmin: true,
	}
	appendRaceAudit(&next, eventKey, name, audit)
	return next, &audit
}

func storeRaceBet(s *model.State, eventKey, name string, bet model.RaceBet) {
	if s.Bets == nil {
		s.Bets = map[string]map[string]model.RaceBet{}
	}
	if s.Bets[eventKey] == nil {
		s.Bets[eventKey] = map[string]model.RaceBet{}
	}
	s.Bets[eventKey][name] = bet
}

func appendRaceAudit(s *model.State, eventKey, name string, a model.RaceAudit) {
	if s.BetHistory == nil {
		s.BetHistory = map[string]map[string][]model.RaceAudit{}
	}
	if s.BetHistory[eventKey] == nil {
		s.BetHistory[eventKey] = map[string][]model.RaceAudit{}
	}
	s.BetHistory[eventKey][name] = append(s.BetHistory[eventKey][name], a)
}

// SetRaceResult publishes or replaces the official outcome of a race.
func SetRaceResult(s model.State, eventKey string, res model.RaceResult) model.State {
	next := s.Clone()
	if next.Results == nil {
		next.Results = map[string]*model.RaceResult{}
	}
	stored := model.RaceResult{
		Pole:     res.Pole,
		Podium:   pad(res.Podium),
		QAnswers: pad(res.QAnswers),
	}
	next.Results[eventKey] = &stored
	return next
}
