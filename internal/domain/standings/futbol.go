package standings

import (
	"sort"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
)

// FutbolRow is one participant's line in a matchday-game table.
type FutbolRow struct {
	Name         string `json:"name"`
	Points       int    `json:"points"`
	Exact        int    `json:"exact"`
	QHits        int    `json:"qHits"`
	Signs        int    `json:"signs"`
	Missed       int    `json:"missed"`
	Catastrophes int    `json:"cat"`
	Eliminated   bool   `json:"eliminated"`
}

// ComputeGlobalFutbol builds the season-wide football table. Only
// matchdays with an official result contribute; pending ones are skipped
// entirely. Participants with three or more missed matchdays are flagged
// as eliminated but keep their row and rank.
func ComputeGlobalFutbol(s model.State) []FutbolRow {
	var jornadas []model.Jornada
	if s.Futbol != nil {
		jornadas = s.Futbol.OrderedJornadas()
	}

	rows := make([]FutbolRow, 0, len(s.Participants))
	for _, name := range s.ParticipantNames() {
		row := FutbolRow{Name: name}
		for _, j := range jornadas {
			sc := scoring.ScoreJornada(s, j.ID, name)
			if sc.Pending {
				continue
			}
			row.Points += sc.Points
			row.Exact += sc.Exact
			row.QHits += sc.QHits
			row.Signs += sc.Signs
			if sc.Missed {
				row.Missed++
			}
			if sc.CatPenalty != 0 {
				row.Catastrophes++
			}
		}
		row.Eliminated = row.Missed >= eliminationThreshold
		rows = append(rows, row)
	}
	sortFutbol(rows)
	return rows
}

// ComputeJornadaFutbol builds the table for a single matchday. Until the
// matchday has an official result there is nothing to rank and the table
// is empty.
func ComputeJornadaFutbol(s model.State, jornadaID string) []FutbolRow {
	if s.FutbolResultFor(jornadaID) == nil {
		return nil
	}
	rows := make([]FutbolRow, 0, len(s.Participants))
	for _, name := range s.ParticipantNames() {
		sc := scoring.ScoreJornada(s, jornadaID, name)
		row := FutbolRow{
			Name:   name,
			Points: sc.Points,
			Exact:  sc.Exact,
			QHits:  sc.QHits,
			Signs:  sc.Signs,
		}
		if sc.Missed {
			row.Missed = 1
		}
		if sc.CatPenalty != 0 {
			row.Catastrophes = 1
		}
		rows = append(rows, row)
	}
	sortFutbol(rows)
	return rows
}

// sortFutbol orders rows under the football cascade: points desc, exact
// scorelines desc, question hits desc, signs desc, missed matchdays asc,
// name asc.
func sortFutbol(rows []FutbolRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Exact != b.Exact {
			return a.Exact > b.Exact
		}
		if a.QHits != b.QHits {
			return a.QHits > b.QHits
		}
		if a.Signs != b.Signs {
			return a.Signs > b.Signs
		}
		if a.Missed != b.Missed {
			return a.Missed < b.Missed
		}
		return a.Name < b.Name
	})
}
