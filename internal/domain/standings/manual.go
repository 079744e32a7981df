package standings

import (
	"sort"

	"github.com/birreros/porra/internal/domain/model"
)

// ManualRow is one line of a hand-curated standings snapshot.
type ManualRow struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// ManualActive reports whether a hand-curated snapshot replaces the
// automatic season table: one exists and automatic mode has not been
// forced back on.
func ManualActive(s model.State) bool {
	return len(s.Standings) > 0 && !s.Meta.ForceAutoStandings
}

// ManualRows returns the hand-curated snapshot in display order:
// explicit ranks first in ascending order, then points descending, then
// name. Entries without an explicit rank inherit their position.
func ManualRows(s model.State) []ManualRow {
	if len(s.Standings) == 0 {
		return nil
	}
	type entry struct {
		name   string
		points int
		rank   *int
	}
	entries := make([]entry, 0, len(s.Standings))
	for name, info := range s.Standings {
		entries = append(entries, entry{name: name, points: info.Points, rank: info.Rank})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		ra, rb := rankOrLast(a.rank), rankOrLast(b.rank)
		if ra != rb {
			return ra < rb
		}
		if a.points != b.points {
			return a.points > b.points
		}
		return a.name < b.name
	})
	rows := make([]ManualRow, len(entries))
	for i, e := range entries {
		rank := i + 1
		if e.rank != nil {
			rank = *e.rank
		}
		rows[i] = ManualRow{Name: e.name, Points: e.points, Rank: rank}
	}
	return rows
}

func rankOrLast(r *int) int {
	if r == nil {
		return int(^uint(0) >> 1)
	}
	return *r
}

// ResetToAutomatic folds the hand-curated snapshot back into automatic
// mode: its points become each participant's new base points, the
// snapshot is removed, and automatic standings are forced on. The input
// state is left untouched.
func ResetToAutomatic(s model.State) model.State {
	next := s.Clone()
	base := make(map[string]int, len(next.Standings))
	for _, row := range ManualRows(next) {
		base[row.Name] = row.Points
	}
	next.Meta.BasePoints = base
	next.Meta.ForceAutoStandings = true
	next.Standings = nil
	return next
}
