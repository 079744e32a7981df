package model

import "sort"

// Resolve helpers. Absence is normal everywhere in the snapshot; these
// centralize the defaulting so scoring code never nil-checks nested maps.

// ParticipantNames returns all participant names sorted lexicographically.
func (s State) ParticipantNames() []string {
	names := make([]string, 0, len(s.Participants))
	for n := range s.Participants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RaceBetFor returns the participant's F1 bet for the event, if any.
func (s State) RaceBetFor(eventKey, name string) (RaceBet, bool) {
	b, ok := s.Bets[eventKey][name]
	return b, ok
}

// RaceResultFor returns the official F1 result for the event, or nil when
// the event is still pending.
func (s State) RaceResultFor(eventKey string) *RaceResult {
	return s.Results[eventKey]
}

// AdjustmentFor returns the manual point adjustment for (event,
// participant), defaulting to 0.
func (s State) AdjustmentFor(eventKey, name string) int {
	return s.ScoreAdjustments[eventKey][name]
}

// BasePointsFor returns the carried-over starting points, defaulting to 0.
func (s State) BasePointsFor(name string) int {
	return s.Meta.BasePoints[name]
}

// FutbolBetFor returns the participant's football bet for the jornada.
func (s State) FutbolBetFor(jornadaID, name string) (FutbolBet, bool) {
	if s.Futbol == nil {
		return FutbolBet{}, false
	}
	b, ok := s.Futbol.Bets[jornadaID][name]
	return b, ok
}

// FutbolResultFor returns the official result for the jornada, or nil.
func (s State) FutbolResultFor(jornadaID string) *FutbolResult {
	if s.Futbol == nil {
		return nil
	}
	return s.Futbol.Results[jornadaID]
}

// JornadaFor returns the jornada definition, if it exists.
func (s State) JornadaFor(jornadaID string) (Jornada, bool) {
	if s.Futbol == nil {
		return Jornada{}, false
	}
	j, ok := s.Futbol.Jornadas[jornadaID]
	return j, ok
}

// EnsureFutbol returns the football sub-state, allocating an empty one on
// a cloned state when missing. Callers must own s (post-Clone).
func (s *State) EnsureFutbol() *FutbolState {
	if s.Futbol == nil {
		s.Futbol = &FutbolState{}
	}
	return s.Futbol
}

// At returns slice[i] or the zero value when out of range. Predictions
// and results routinely carry short arrays.
func At[V any](s []V, i int) V {
	if i < 0 || i >= len(s) {
		var zero V
		return zero
	}
	return s[i]
}
