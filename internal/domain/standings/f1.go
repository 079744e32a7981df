package standings

import (
	"sort"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
)

// F1Row is one participant's line in a race-game table.
type F1Row struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	TB1       int    `json:"tb1"`
	Hits      int    `json:"hits"`
	Exact     int    `json:"exact"`
	Penalties int    `json:"pen"`
}

// ComputeGlobalF1 builds the season-wide race table over the given event
// keys. Rows are seeded with each participant's carried-over base points
// and fold every event, pending ones included: a pending event awards no
// hit points but still applies penalties and manual adjustments.
func ComputeGlobalF1(s model.State, eventKeys []string) []F1Row {
	rows := make([]F1Row, 0, len(s.Participants))
	for _, name := range s.ParticipantNames() {
		row := F1Row{Name: name, Points: s.BasePointsFor(name)}
		for _, key := range eventKeys {
			sc := scoring.ScoreRace(s, key, name)
			row.Points += sc.Points
			row.TB1 += sc.TB1
			row.Hits += sc.Hits
			row.Exact += sc.Exact
			row.Penalties += sc.Penalties
		}
		rows = append(rows, row)
	}
	sortF1(rows)
	return rows
}

// ComputeRaceF1 builds the table for a single race.
func ComputeRaceF1(s model.State, eventKey string) []F1Row {
	rows := make([]F1Row, 0, len(s.Participants))
	for _, name := range s.ParticipantNames() {
		sc := scoring.ScoreRace(s, eventKey, name)
		rows = append(rows, F1Row{
			Name:      name,
			Points:    sc.Points,
			TB1:       sc.TB1,
			Hits:      sc.Hits,
			Exact:     sc.Exact,
			Penalties: sc.Penalties,
		})
	}
	sortF1(rows)
	return rows
}

// sortF1 orders rows under the race-game cascade: points desc, tie-break
// sum asc, hits desc, exact podium hits desc, penalties asc, name asc.
func sortF1(rows []F1Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.TB1 != b.TB1 {
			return a.TB1 < b.TB1
		}
		if a.Hits != b.Hits {
			return a.Hits > b.Hits
		}
		if a.Exact != b.Exact {
			return a.Exact > b.Exact
		}
		if a.Penalties != b.Penalties {
			return a.Penalties < b.Penalties
		}
		return a.Name < b.Name
	})
}
