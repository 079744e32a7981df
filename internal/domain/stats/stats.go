// Package stats derives season statistics from a state snapshot: event
// winners, full houses, hit totals, prediction popularity, and the best
// and worst single-event scores.
package stats

import (
	"sort"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
)

// DefaultTopLimit bounds each leaderboard when no explicit limit is set.
const DefaultTopLimit = 5

// Entry is one name/count pair in a leaderboard.
type Entry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// EventScore is a single participant's score at a single event.
type EventScore struct {
	Name   string `json:"name"`
	Race   string `json:"race"`
	Points int    `json:"points"`
}

// Bundle is the full statistics payload.
type Bundle struct {
	Winners     []Entry      `json:"winners"`
	Fulls       []Entry      `json:"fulls"`
	HitsLeaders []Entry      `json:"hitsLeaders"`
	VotePole    []Entry      `json:"votePole"`
	VoteP1      []Entry      `json:"voteP1"`
	VoteP2      []Entry      `json:"voteP2"`
	VoteP3      []Entry      `json:"voteP3"`
	BestScores  []EventScore `json:"bestScores"`
	WorstScores []EventScore `json:"worstScores"`
}

// Option configures a statistics build.
type Option func(*builder)

// WithTopLimit caps the length of every leaderboard.
func WithTopLimit(n int) Option {
	return func(b *builder) {
		if n > 0 {
			b.limit = n
		}
	}
}

type builder struct {
	limit int
}

// Build computes the statistics bundle over the given race calendar.
// Popularity tallies count every submitted prediction, late or not, with
// or without an official result. Winner, full-house, hit, and best/worst
// tallies only consider races with an official result; ties at the top
// or bottom of a race all count.
func Build(s model.State, races []model.Race, opts ...Option) Bundle {
	b := builder{limit: DefaultTopLimit}
	for _, opt := range opts {
		opt(&b)
	}

	wins := map[string]int{}
	fulls := map[string]int{}
	hits := map[string]int{}
	votePole := map[string]int{}
	voteSlot := [3]map[string]int{{}, {}, {}}
	var best, worst []EventScore

	names := s.ParticipantNames()
	for _, race := range races {
		for _, bet := range s.Bets[race.Key] {
			if bet.Pole != "" {
				votePole[bet.Pole]++
			}
			for i := 0; i < 3 && i < len(bet.Podium); i++ {
				if bet.Podium[i] != "" {
					voteSlot[i][bet.Podium[i]]++
				}
			}
		}
		if s.RaceResultFor(race.Key) == nil || len(names) == 0 {
			continue
		}

		scores := make([]scoring.RaceScore, len(names))
		maxPts, minPts := 0, 0
		for i, name := range names {
			sc := scoring.ScoreRace(s, race.Key, name)
			scores[i] = sc
			hits[name] += sc.Hits
			if i == 0 || sc.Points > maxPts {
				maxPts = sc.Points
			}
			if i == 0 || sc.Points < minPts {
				minPts = sc.Points
			}
		}
		for i, name := range names {
			sc := scores[i]
			if sc.Points == maxPts {
				wins[name]++
				best = append(best, EventScore{Name: name, Race: race.GrandPrix, Points: sc.Points})
			}
			if sc.Points == minPts {
				worst = append(worst, EventScore{Name: name, Race: race.GrandPrix, Points: sc.Points})
			}
			if sc.FullHouse {
				fulls[name]++
			}
		}
	}

	sort.SliceStable(best, func(i, j int) bool {
		if best[i].Points != best[j].Points {
			return best[i].Points > best[j].Points
		}
		return best[i].Name < best[j].Name
	})
	sort.SliceStable(worst, func(i, j int) bool {
		if worst[i].Points != worst[j].Points {
			return worst[i].Points < worst[j].Points
		}
		return worst[i].Name < worst[j].Name
	})

	return Bundle{
		Winners:     topList(wins, b.limit),
		Fulls:       topList(fulls, b.limit),
		HitsLeaders: topList(hits, b.limit),
		VotePole:    topList(votePole, b.limit),
		VoteP1:      topList(voteSlot[0], b.limit),
		VoteP2:      topList(voteSlot[1], b.limit),
		VoteP3:      topList(voteSlot[2], b.limit),
		BestScores:  truncate(best, b.limit),
		WorstScores: truncate(worst, b.limit),
	}
}

// topList ranks a tally map by count descending, names breaking ties.
func topList(tally map[string]int, limit int) []Entry {
	entries := make([]Entry, 0, len(tally))
	for name, value := range tally {
		entries = append(entries, Entry{Name: name, Value: value})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return truncate(entries, limit)
}

func truncate[T any](s []T, limit int) []T {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
