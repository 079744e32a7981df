package standings

import (
	"sort"

	"github.com/birreros/porra/internal/domain/model"
)

// ChampionshipRow is one line of the all-time titles table.
type ChampionshipRow struct {
	Name   string `json:"name"`
	Titles int    `json:"titles"`
}

// Championships ranks participants by career titles, most first, names
// breaking ties.
func Championships(s model.State) []ChampionshipRow {
	rows := make([]ChampionshipRow, 0, len(s.Participants))
	for _, name := range s.ParticipantNames() {
		rows = append(rows, ChampionshipRow{Name: name, Titles: s.Meta.Championships[name]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Titles != rows[j].Titles {
			return rows[i].Titles > rows[j].Titles
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
