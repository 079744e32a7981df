// Package standings folds per-event scores into ranked tables. Every
// table is computed from scratch on each call and sorted under a strict
// total order, so equal snapshots always yield identical rankings.
package standings

// ScopeAll selects the season-wide table instead of a single event.
const ScopeAll = "all"

// eliminationThreshold is the number of missed matchdays after which a
// participant is flagged as eliminated in the football table.
const eliminationThreshold = 3

// Table is a race-game standings response. Exactly one of Rows or
// ManualRows is populated, depending on whether a hand-curated snapshot
// is in force.
type Table struct {
	Manual     bool        `json:"manual"`
	Rows       []F1Row     `json:"rows,omitempty"`
	ManualRows []ManualRow `json:"manualRows,omitempty"`
}
