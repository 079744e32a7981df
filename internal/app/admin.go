package service

import (
	"context"
	"time"

	"github.com/birreros/porra/internal/domain/bets"
	"github.com/birreros/porra/internal/domain/model"
)

// SetRaceWindow overrides the submission window of a race.
func (s *Service) SetRaceWindow(ctx context.Context, eventKey string, mode bets.WindowMode) error {
	if _, ok := s.raceByKey(eventKey); !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetRaceWindow(st, eventKey, mode)
	})
	return nil
}

// SetRaceReveal forces race bets visible ahead of qualifying.
func (s *Service) SetRaceReveal(ctx context.Context, eventKey string, show bool) error {
	if _, ok := s.raceByKey(eventKey); !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetRaceReveal(st, eventKey, show)
	})
	return nil
}

// SetJornadaWindow overrides the submission window of a matchday.
func (s *Service) SetJornadaWindow(ctx context.Context, jornadaID string, mode bets.WindowMode) error {
	s.mu.RLock()
	_, ok := s.state.JornadaFor(jornadaID)
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetJornadaWindow(st, jornadaID, mode)
	})
	return nil
}

// SetJornadaReveal forces matchday bets visible ahead of the deadline.
func (s *Service) SetJornadaReveal(ctx context.Context, jornadaID string, show bool) error {
	s.mu.RLock()
	_, ok := s.state.JornadaFor(jornadaID)
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetJornadaReveal(st, jornadaID, show)
	})
	return nil
}

// AssignQuestionOwner hands a race's question sheet to a participant.
func (s *Service) AssignQuestionOwner(ctx context.Context, eventKey, name string) error {
	if _, ok := s.raceByKey(eventKey); !ok {
		return ErrUnknownEvent
	}
	if name != "" {
		if err := s.knownParticipant(name); err != nil {
			return err
		}
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.AssignQuestionOwner(st, eventKey, name)
	})
	return nil
}

// SetRaceQuestions stores a race's free-text questions. The author window
// closes four hours before qualifying.
func (s *Service) SetRaceQuestions(ctx context.Context, eventKey string, questions []string) error {
	race, ok := s.raceByKey(eventKey)
	if !ok {
		return ErrUnknownEvent
	}
	if err := s.authorWindowOpen(race); err != nil {
		return err
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.SetRaceQuestions(st, eventKey, questions)
	})
	return nil
}

// PublishRaceQuestions marks a race's question sheet published, inside the
// same author window.
func (s *Service) PublishRaceQuestions(ctx context.Context, eventKey, author string) error {
	race, ok := s.raceByKey(eventKey)
	if !ok {
		return ErrUnknownEvent
	}
	if err := s.authorWindowOpen(race); err != nil {
		return err
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.PublishRaceQuestions(st, eventKey, author, time.Now())
	})
	return nil
}

// authorWindowOpen reports whether the question author may still edit the
// sheet. A race without a usable qualifying time never closes.
func (s *Service) authorWindowOpen(race model.Race) error {
	s.mu.RLock()
	cutoff, ok := s.state.AuthorCutoff(race)
	s.mu.RUnlock()
	if ok && !time.Now().Before(cutoff) {
		return ErrAuthorWindowClosed
	}
	return nil
}

// LockRaceQuestions freezes a race's question sheet against edits.
func (s *Service) LockRaceQuestions(ctx context.Context, eventKey string, locked bool) error {
	if _, ok := s.raceByKey(eventKey); !ok {
		return ErrUnknownEvent
	}
	s.mutate(ctx, func(st model.State) model.State {
		return bets.LockRaceQuestions(st, eventKey, locked)
	})
	return nil
}
