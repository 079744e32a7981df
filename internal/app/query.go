package service

import (
	"context"
	"sort"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
	"github.com/birreros/porra/internal/domain/standings"
	"github.com/birreros/porra/internal/domain/stats"
)

// seasonKeys returns the calendar's event keys. On a bare deployment
// with no calendar, the events present in the snapshot stand in so the
// tables still fold every bet.
func (s *Service) seasonKeys(st model.State) []string {
	if len(s.races) > 0 {
		return model.RaceKeys(s.races)
	}
	seen := map[string]struct{}{}
	for key := range st.Bets {
		seen[key] = struct{}{}
	}
	for key := range st.Results {
		seen[key] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Service) seasonRaces(st model.State) []model.Race {
	if len(s.races) > 0 {
		return s.races
	}
	keys := s.seasonKeys(st)
	races := make([]model.Race, len(keys))
	for i, key := range keys {
		races[i] = model.Race{Key: key, GrandPrix: key}
	}
	return races
}

// F1Standings returns the race-game table for a scope: standings.ScopeAll
// for the season, or a single event key.
func (s *Service) F1Standings(ctx context.Context, scope string) (standings.Table, error) {
	st := s.snapshot()
	if scope == standings.ScopeAll || scope == "" {
		if standings.ManualActive(st) {
			return standings.Table{Manual: true, ManualRows: standings.ManualRows(st)}, nil
		}
		return standings.Table{Rows: standings.ComputeGlobalF1(st, s.seasonKeys(st))}, nil
	}
	if _, ok := s.raceByKey(scope); !ok {
		return standings.Table{}, ErrUnknownEvent
	}
	return standings.Table{Rows: standings.ComputeRaceF1(st, scope)}, nil
}

// FutbolStandings returns the football table for a scope.
func (s *Service) FutbolStandings(ctx context.Context, scope string) ([]standings.FutbolRow, error) {
	st := s.snapshot()
	if scope == standings.ScopeAll || scope == "" {
		return standings.ComputeGlobalFutbol(st), nil
	}
	if _, ok := st.JornadaFor(scope); !ok {
		return nil, ErrUnknownEvent
	}
	return standings.ComputeJornadaFutbol(st, scope), nil
}

// Championships returns the all-time titles table.
func (s *Service) Championships(ctx context.Context) []standings.ChampionshipRow {
	return standings.Championships(s.snapshot())
}

// Statistics returns the season statistics bundle.
func (s *Service) Statistics(ctx context.Context) stats.Bundle {
	st := s.snapshot()
	return stats.Build(st, s.seasonRaces(st), stats.WithTopLimit(s.statsTopLimit))
}

// RaceBreakdown returns one participant's score and its line items for
// one race.
func (s *Service) RaceBreakdown(ctx context.Context, eventKey, name string) (scoring.RaceScore, []scoring.Item, error) {
	st := s.snapshot()
	if _, ok := s.raceByKey(eventKey); !ok {
		return scoring.RaceScore{}, nil, ErrUnknownEvent
	}
	if _, ok := st.Participants[name]; !ok {
		return scoring.RaceScore{}, nil, ErrUnknownParticipant
	}
	sc := scoring.ScoreRace(st, eventKey, name)
	_, items := scoring.DescribeRace(st, eventKey, name)
	return sc, items, nil
}

// JornadaBreakdown returns one participant's score for one matchday.
func (s *Service) JornadaBreakdown(ctx context.Context, jornadaID, name string) (scoring.JornadaScore, error) {
	st := s.snapshot()
	if _, ok := st.JornadaFor(jornadaID); !ok {
		return scoring.JornadaScore{}, ErrUnknownEvent
	}
	if _, ok := st.Participants[name]; !ok {
		return scoring.JornadaScore{}, ErrUnknownParticipant
	}
	return scoring.ScoreJornada(st, jornadaID, name), nil
}

// Snapshot returns a copy of the working state.
func (s *Service) Snapshot(ctx context.Context) model.State {
	return s.snapshot()
}

// ExportSnapshot returns the state prepared for export, with the season
// table materialized when no manual one exists.
func (s *Service) ExportSnapshot(ctx context.Context) model.State {
	st := s.snapshot()
	return standings.ExportSnapshot(st, s.seasonKeys(st))
}

// Races returns the season calendar.
func (s *Service) Races(ctx context.Context) []model.Race {
	out := make([]model.Race, len(s.races))
	copy(out, s.races)
	return out
}

// Drivers returns the driver grid offered for pole and podium picks.
// A snapshot-level list overrides the configured one when non-empty.
func (s *Service) Drivers(ctx context.Context) []string {
	st := s.snapshot()
	src := s.drivers
	if len(st.Meta.Drivers) > 0 {
		src = st.Meta.Drivers
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Jornadas returns the football matchdays in display order.
func (s *Service) Jornadas(ctx context.Context) []model.Jornada {
	st := s.snapshot()
	if st.Futbol == nil {
		return nil
	}
	return st.Futbol.OrderedJornadas()
}
