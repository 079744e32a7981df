package bets

import (
	"time"

	"github.com/birreros/porra/internal/domain/model"
)

// SetAdjustment sets a manual per-race point adjustment for one
// participant. Zero clears the adjustment, and emptied maps are pruned so
// the snapshot never accumulates dead keys.
func SetAdjustment(s model.State, eventKey, name string, delta int) model.State {
	next := s.Clone()
	if delta == 0 {
		raceMap := next.ScoreAdjustments[eventKey]
		delete(raceMap, name)
		if len(raceMap) == 0 {
			delete(next.ScoreAdjustments, eventKey)
		}
		if len(next.ScoreAdjustments) == 0 {
			next.ScoreAdjustments = nil
		}
		return next
	}
	if next.ScoreAdjustments == nil {
		next.ScoreAdjustments = map[string]map[string]int{}
	}
	if next.ScoreAdjustments[eventKey] == nil {
		next.ScoreAdjustments[eventKey] = map[string]int{}
	}
	next.ScoreAdjustments[eventKey][name] = delta
	return next
}

// SetBasePoints sets a participant's season starting points.
func SetBasePoints(s model.State, name string, points int) model.State {
	next := s.Clone()
	if next.Meta.BasePoints == nil {
		next.Meta.BasePoints = map[string]int{}
	}
	next.Meta.BasePoints[name] = points
	return next
}

// SetChampionships sets a participant's career title count.
func SetChampionships(s model.State, name string, titles int) model.State {
	next := s.Clone()
	if next.Meta.Championships == nil {
		next.Meta.Championships = map[string]int{}
	}
	next.Meta.Championships[name] = titles
	return next
}

// AddParticipant registers a participant. Registering an existing name
// keeps the original creation time.
func AddParticipant(s model.State, name string, at time.Time) model.State {
	next := s.Clone()
	if next.Participants == nil {
		next.Participants = map[string]model.Participant{}
	}
	if _, ok := next.Participants[name]; !ok {
		next.Participants[name] = model.Participant{Name: name, CreatedAt: &at}
	}
	return next
}

// RemoveParticipant drops a participant from the roster. Their past bets
// and history stay in the snapshot but no longer appear in any table.
func RemoveParticipant(s model.State, name string) model.State {
	next := s.Clone()
	delete(next.Participants, name)
	return next
}

// SetRaceWindow overrides the submission window of a race.
func SetRaceWindow(s model.State, eventKey string, mode WindowMode) model.State {
	next := s.Clone()
	if next.BetsWindow == nil {
		next.BetsWindow = map[string]model.Window{}
	}
	setWindow(next.BetsWindow, eventKey, mode)
	return next
}

// SetRaceReveal forces other participants' race bets visible before the
// window closes.
func SetRaceReveal(s model.State, eventKey string, show bool) model.State {
	next := s.Clone()
	if next.BetsReveal == nil {
		next.BetsReveal = map[string]model.Reveal{}
	}
	next.BetsReveal[eventKey] = model.Reveal{ForceShow: show}
	return next
}

func setWindow(m map[string]model.Window, key string, mode WindowMode) {
	switch mode {
	case WindowOpen:
		m[key] = model.Window{ForceOpen: true}
	case WindowClosed:
		m[key] = model.Window{ForceClosed: true}
	default:
		delete(m, key)
	}
}
