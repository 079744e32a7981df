package model

import (
	"sort"
	"time"
)

// Fixture names the two sides of one scheduled match.
type Fixture struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Goals is a nullable scoreline side pair. A nil side means "not entered";
// it must never be scored as zero goals.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Jornada is one football matchday.
type Jornada struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Matches  []Fixture  `json:"matches,omitempty"`
}

// FutbolBet is one participant's prediction for one jornada.
type FutbolBet struct {
	Matches     []Goals    `json:"matches"`
	Questions   []string   `json:"questions"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Late        bool       `json:"late,omitempty"`
	AdminEdited bool       `json:"adminEdited,omitempty"`
}

// FutbolResult is the official outcome of a jornada.
type FutbolResult struct {
	Matches  []Goals  `json:"matches"`
	QAnswers []string `json:"qAnswers"`
}

// FutbolAudit is one append-only history entry for a football submission.
type FutbolAudit struct {
	ID        string    `json:"id,omitempty"`
	TS        time.Time `json:"ts"`
	Matches   []Goals   `json:"matches"`
	Questions []string  `json:"questions"`
	Late      bool      `json:"late,omitempty"`
}

// FutbolState is the football half of the pool snapshot.
type FutbolState struct {
	Order           []string                             `json:"order,omitempty"`
	Jornadas        map[string]Jornada                   `json:"jornadas,omitempty"`
	Bets            map[string]map[string]FutbolBet      `json:"bets,omitempty"`
	Results         map[string]*FutbolResult             `json:"results,omitempty"`
	BetsWindow      map[string]Window                    `json:"betsWindow,omitempty"`
	BetsReveal      map[string]Reveal                    `json:"betsReveal,omitempty"`
	BetHistory      map[string]map[string][]FutbolAudit  `json:"betHistory,omitempty"`
	Questions       map[string][]string                  `json:"questions,omitempty"`
	QuestionsStatus map[string]QuestionStatus            `json:"questionsStatus,omitempty"`
}

func (f FutbolState) clone() FutbolState {
	out := f
	out.Order = cloneSlice(f.Order)
	out.Jornadas = cloneMapFunc(f.Jornadas, func(j Jornada) Jornada {
		j.Matches = cloneSlice(j.Matches)
		return j
	})
	out.Bets = cloneNested(f.Bets, func(b FutbolBet) FutbolBet {
		b.Matches = cloneGoals(b.Matches)
		b.Questions = cloneSlice(b.Questions)
		return b
	})
	out.Results = cloneMapFunc(f.Results, func(r *FutbolResult) *FutbolResult {
		if r == nil {
			return nil
		}
		c := *r
		c.Matches = cloneGoals(r.Matches)
		c.QAnswers = cloneSlice(r.QAnswers)
		return &c
	})
	out.BetsWindow = cloneMap(f.BetsWindow)
	out.BetsReveal = cloneMap(f.BetsReveal)
	out.BetHistory = cloneMapFunc(f.BetHistory, func(m map[string][]FutbolAudit) map[string][]FutbolAudit {
		return cloneMapFunc(m, func(logs []FutbolAudit) []FutbolAudit {
			c := make([]FutbolAudit, len(logs))
			for i, e := range logs {
				e.Matches = cloneGoals(e.Matches)
				e.Questions = cloneSlice(e.Questions)
				c[i] = e
			}
			return c
		})
	})
	out.Questions = cloneMapFunc(f.Questions, cloneSlice[string])
	out.QuestionsStatus = cloneMap(f.QuestionsStatus)
	return out
}

func cloneGoals(s []Goals) []Goals {
	if s == nil {
		return nil
	}
	out := make([]Goals, len(s))
	for i, g := range s {
		if g.Home != nil {
			h := *g.Home
			g.Home = &h
		}
		if g.Away != nil {
			a := *g.Away
			g.Away = &a
		}
		out[i] = g
	}
	return out
}

// OrderedJornadas returns the jornadas in pool order: the explicit order
// list when present, otherwise sorted by deadline ascending (missing
// deadlines last) and then by name.
func (f *FutbolState) OrderedJornadas() []Jornada {
	if f == nil {
		return nil
	}
	if len(f.Order) > 0 {
		out := make([]Jornada, 0, len(f.Order))
		for _, id := range f.Order {
			if j, ok := f.Jornadas[id]; ok {
				out = append(out, j)
			}
		}
		return out
	}
	out := make([]Jornada, 0, len(f.Jornadas))
	for _, j := range f.Jornadas {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		a, b := out[i], out[k]
		switch {
		case a.Deadline == nil && b.Deadline == nil:
			return a.Name < b.Name
		case a.Deadline == nil:
			return false
		case b.Deadline == nil:
			return true
		case !a.Deadline.Equal(*b.Deadline):
			return a.Deadline.Before(*b.Deadline)
		default:
			return a.Name < b.Name
		}
	})
	return out
}

// IntPtr is a convenience for building nullable goal counts.
func IntPtr(v int) *int { return &v }
