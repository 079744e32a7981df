package standings

import "github.com/birreros/porra/internal/domain/model"

// ExportSnapshot prepares a state copy for export. If no hand-curated
// standings exist, the current automatic season table is materialized
// into the snapshot so an importer sees the same ranking without
// recomputing it.
func ExportSnapshot(s model.State, eventKeys []string) model.State {
	next := s.Clone()
	if len(next.Standings) > 0 {
		return next
	}
	rows := ComputeGlobalF1(next, eventKeys)
	materialized := make(map[string]model.StandingEntry, len(rows))
	for i, row := range rows {
		rank := i + 1
		materialized[row.Name] = model.StandingEntry{Points: row.Points, Rank: &rank}
	}
	next.Standings = materialized
	return next
}
