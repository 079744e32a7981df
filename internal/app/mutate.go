package service

import (
	"context"
	"time"

	"github.com/birreros/porra/internal/domain/bets"
	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/standings"
	"github.com/birreros/porra/pkg/metrics"
)

// SubmitRaceBet records a participant's race prediction, stamping it late
// when the automatic cutoff has passed. The returned audit entry is nil
// for an idempotent resubmission.
func (s *Service) SubmitRaceBet(ctx context.Context, eventKey, name string, p bets.RacePayload) (*model.RaceAudit, error) {
	race, ok := s.raceByKey(eventKey)
	if !ok {
		return nil, ErrUnknownEvent
	}
	if err := s.knownParticipant(name); err != nil {
		return nil, err
	}

	now := time.Now()
	late := false
	s.mu.RLock()
	if cutoff, ok := s.state.RaceCutoff(race); ok {
		late = !now.Before(cutoff)
	}
	s.mu.RUnlock()

	var audit *model.RaceAudit
	s.mutate(ctx, func(st model.State) model.State {
		next, a := bets.SubmitRace(st, eventKey, name, p, now, late)
		audit = a
		return next
	})
	metrics.RecordBetSubmitted()
	if audit != nil {
		metrics.RecordHistoryEntry()
	}
	return audit, nil
}

// AdminEditRaceBet records a race prediction on a participant's behalf
// with an explicit late flag.
func (s *Service) AdminEditRaceBet(ctx context.Context, eventKey, name string, p bets.RacePayload, late bool) (*model.RaceAudit, error) {
	if _, ok := s.raceByKey(eventKey); !ok {
		return nil, ErrUnknownEvent
	}
	if err := s.knownParticipant(name); err != nil {
		return nil, err
	}
	var audit *model.RaceAudit
	s.mutate(ctx, func(st model.State) model.State {
		next, a := bets.AdminEditRace(st, eventKey, name, p, time.Now(), late)
		audit = a
		return next
	})
	metrics.RecordBetSubmitted()
	if audit != nil {
		metrics.RecordHistoryEntry()
	}
	return audit, nil
}

// SubmitJornadaBet records a participant's matchday prediction, stamping
// it late when the matchday deadline has passed.
func (s *Service) SubmitJornadaBet(ctx context.Context, jornadaID, name string, p bets.FutbolPayload) (*model.FutbolAudit, error) {
	s.mu.RLock()
	jornada, ok := s.state.JornadaFor(jornadaID)
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownEvent
	}
	if err := s.knownParticipant(name); err != nil {
		return nil, err
	}

	now := time.Now()
	late := jornada.Deadline != nil && !now.Before(*jornada.Deadline)

	var audit *model.FutbolAudit
	s.mutate(ctx, func(st model.State) model.State {
		next, a := bets.SubmitJornada(st, jornadaID, name, p, now, late)
		audit = a
		return next
	})
	metrics.RecordBetSubmitted()
	if audit != nil {
		metrics.RecordHistoryEntry()
	}
	return audit, nil
}

// AdminEditJornadaBet records a matchday prediction on a participant's
// behalf with an explicit late flag. No history entry is written.
func (s *Service) AdminEditJornadaBet(ctx context.Context, jornadaID, name string, p bets.FutbolPayload, late bool) error {
	s.mu.RLock()
	_, ok := s.state.JornadaFor(jornadaID)
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownEvent
	}
	if err := s.knownParticipant(name); err != nil {
		return err
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.AdminEditJornada(st, jornadaID, name, p, time.Now(), late)
	})
	metrics.RecordBetSubmitted()
	return nil
}

// SetRaceResult publishes the official outcome of a race.
func (s *Service) SetRaceResult(ctx context.Context, eventKey string, res model.RaceResult) error {
	if _, ok := s.raceByKey(eventKey); !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetRaceResult(st, eventKey, res)
	})
	metrics.RecordResultPublished()
	return nil
}

// SetJornadaResult publishes the official outcome of a matchday.
func (s *Service) SetJornadaResult(ctx context.Context, jornadaID string, res model.FutbolResult) error {
	s.mu.RLock()
	_, ok := s.state.JornadaFor(jornadaID)
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetJornadaResult(st, jornadaID, res)
	})
	metrics.RecordResultPublished()
	return nil
}

// SetAdjustment sets a manual per-race point adjustment. Zero clears it.
func (s *Service) SetAdjustment(ctx context.Context, eventKey, name string, delta int) error {
	if _, ok := s.raceByKey(eventKey); !ok {
		return ErrUnknownEvent
	}
	if err := s.knownParticipant(name); err != nil {
		return err
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetAdjustment(st, eventKey, name, delta)
	})
	return nil
}

// SaveJornada creates or replaces a matchday and its question sheet.
func (s *Service) SaveJornada(ctx context.Context, j model.Jornada, questions []string) error {
	if j.ID == "" {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SaveJornada(st, j, questions)
	})
	return nil
}

// DeleteJornada removes a matchday and everything keyed by it.
func (s *Service) DeleteJornada(ctx context.Context, jornadaID string) error {
	s.mu.RLock()
	_, ok := s.state.JornadaFor(jornadaID)
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.DeleteJornada(st, jornadaID)
	})
	return nil
}

// ResetStandings folds the manual standings snapshot back into automatic
// mode.
func (s *Service) ResetStandings(ctx context.Context) {
	s.mutate(ctx, standings.ResetToAutomatic)
}

// ReplaceSnapshot swaps in an imported snapshot wholesale.
func (s *Service) ReplaceSnapshot(ctx context.Context, st model.State) {
	s.mutate(ctx, func(model.State) model.State {
		return st.Clone()
	})
}

// AddParticipant registers a participant.
func (s *Service) AddParticipant(ctx context.Context, name string) {
	s.mutate(ctx, func(st model.State) model.State {
		return bets.AddParticipant(st, name, time.Now())
	})
}

// RemoveParticipant drops a participant from the roster.
func (s *Service) RemoveParticipant(ctx context.Context, name string) {
	s.mutate(ctx, func(st model.State) model.State {
		return bets.RemoveParticipant(st, name)
	})
}

// SetBasePoints sets a participant's season starting points.
func (s *Service) SetBasePoints(ctx context.Context, name string, points int) error {
	if err := s.knownParticipant(name); err != nil {
		return err
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetBasePoints(st, name, points)
	})
	return nil
}

// SetChampionships sets a participant's career title count.
func (s *Service) SetChampionships(ctx context.Context, name string, titles int) error {
	if err := s.knownParticipant(name); err != nil {
		return err
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetChampionships(st, name, titles)
	})
	return nil
}

func (s *Service) knownParticipant(name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.state.Participants[name]; !ok {
		return ErrUnknownParticipant
	}
	return nil
}
