// Package model contains the state snapshot types shared between layers.
//
// The whole pool lives in one State value. Scoring and standings never
// mutate a State; writers produce a new value via Clone and the
// submission helpers in the bets package.
package model

import "time"

// Participant is a pool member. The name doubles as the identifier.
type Participant struct {
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// User carries account data for the presentation layer. The engine never
// reads it; it is kept so snapshots round-trip unchanged.
type User struct {
	Name         string     `json:"name"`
	PasswordHash string     `json:"passwordHash,omitempty"`
	MustChange   bool       `json:"mustChange,omitempty"`
	IsAdmin      bool       `json:"isAdmin,omitempty"`
	Blocked      bool       `json:"blocked,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	ChangedAt    *time.Time `json:"changedAt,omitempty"`
}

// RaceBet is one participant's F1 prediction for one grand prix.
// Podium and Answers may be shorter than 3 or contain empty strings.
type RaceBet struct {
	Pole        string     `json:"pole"`
	Podium      []string   `json:"podium"`
	Answers     []string   `json:"q"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Late        bool       `json:"late,omitempty"`
	AdminEdited bool       `json:"adminEdited,omitempty"`
}

// RaceResult is the official outcome of a grand prix. Partial results are
// allowed: empty pole or podium slots simply score nothing.
type RaceResult struct {
	Pole     string   `json:"pole"`
	Podium   []string `json:"podium"`
	QAnswers []string `json:"qAnswers"`
}

// RaceAudit is one append-only history entry for an F1 bet submission.
type RaceAudit struct {
	ID            string    `json:"id,omitempty"`
	TS            time.Time `json:"ts"`
	Pole          string    `json:"pole"`
	Podium        []string  `json:"podium"`
	Answers       []string  `json:"q"`
	Late          bool      `json:"late,omitempty"`
	EditedByAdmin bool      `json:"editedByAdmin,omitempty"`
}

// Window is an admin override of the betting window for one event.
type Window struct {
	ForceOpen   bool `json:"forceOpen,omitempty"`
	ForceClosed bool `json:"forceClosed,omitempty"`
}

// Reveal is an admin override of bet visibility for one event.
type Reveal struct {
	ForceShow bool `json:"forceShow,omitempty"`
}

// QuestionStatus tracks publication of an event's free-text questions.
type QuestionStatus struct {
	Published   bool       `json:"published,omitempty"`
	Force       bool       `json:"force,omitempty"`
	Locked      bool       `json:"locked,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// StandingEntry is one row of an imported manual standings snapshot.
// A nil rank sorts after every explicit rank.
type StandingEntry struct {
	Points int  `json:"points"`
	Rank   *int `json:"rank"`
}

// RaceOverride replaces calendar schedule fields for one grand prix.
// Deadline math happens outside the engine; this is carried data.
type RaceOverride struct {
	QDate    string `json:"qDate,omitempty"`
	QTime    string `json:"qTime,omitempty"`
	RaceDate string `json:"raceDate,omitempty"`
	RaceTime string `json:"raceTime,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Meta holds pool-wide settings and carried-over data.
type Meta struct {
	BasePoints         map[string]int          `json:"basePoints,omitempty"`
	Championships      map[string]int          `json:"championships,omitempty"`
	Drivers            []string                `json:"drivers,omitempty"`
	ForceAutoStandings bool                    `json:"forceAutoStandings,omitempty"`
	AdminSecret        string                  `json:"adminSecret,omitempty"`
	Seeded             bool                    `json:"seeded,omitempty"`
	RaceOverrides      map[string]RaceOverride `json:"raceOverrides,omitempty"`
}

// State is the whole pool snapshot. Every map may be nil; lookups go
// through the resolve helpers which default absence to zero values.
type State struct {
	Participants     map[string]Participant           `json:"participants,omitempty"`
	Users            map[string]User                  `json:"users,omitempty"`
	Bets             map[string]map[string]RaceBet    `json:"bets,omitempty"`
	Results          map[string]*RaceResult           `json:"results,omitempty"`
	BetHistory       map[string]map[string][]RaceAudit `json:"betHistory,omitempty"`
	BetsWindow       map[string]Window                `json:"betsWindow,omitempty"`
	BetsReveal       map[string]Reveal                `json:"betsReveal,omitempty"`
	Questions        map[string][]string              `json:"questions,omitempty"`
	QuestionsStatus  map[string]QuestionStatus        `json:"questionsStatus,omitempty"`
	QuestionOwner    map[string]string                `json:"questionOwner,omitempty"`
	ScoreAdjustments map[string]map[string]int        `json:"scoreAdjustments,omitempty"`
	Standings        map[string]StandingEntry         `json:"standings,omitempty"`
	Meta             Meta                             `json:"meta,omitempty"`
	Futbol           *FutbolState                     `json:"futbol,omitempty"`
}

// Clone returns a deep copy of the state. Writers clone first and mutate
// the copy, so readers can keep using the previous snapshot.
func (s State) Clone() State {
	out := s
	out.Participants = cloneMap(s.Participants)
	out.Users = cloneMap(s.Users)
	out.Bets = cloneNested(s.Bets, func(b RaceBet) RaceBet {
		b.Podium = cloneSlice(b.Podium)
		b.Answers = cloneSlice(b.Answers)
		return b
	})
	out.Results = cloneMapFunc(s.Results, func(r *RaceResult) *RaceResult {
		if r == nil {
			return nil
		}
		c := *r
		c.Podium = cloneSlice(r.Podium)
		c.QAnswers = cloneSlice(r.QAnswers)
		return &c
	})
	out.BetHistory = cloneMapFunc(s.BetHistory, func(m map[string][]RaceAudit) map[string][]RaceAudit {
		return cloneMapFunc(m, func(logs []RaceAudit) []RaceAudit {
			c := make([]RaceAudit, len(logs))
			for i, e := range logs {
				e.Podium = cloneSlice(e.Podium)
				e.Answers = cloneSlice(e.Answers)
				c[i] = e
			}
			return c
		})
	})
	out.BetsWindow = cloneMap(s.BetsWindow)
	out.BetsReveal = cloneMap(s.BetsReveal)
	out.Questions = cloneMapFunc(s.Questions, cloneSlice[string])
	out.QuestionsStatus = cloneMap(s.QuestionsStatus)
	out.QuestionOwner = cloneMap(s.QuestionOwner)
	out.ScoreAdjustments = cloneMapFunc(s.ScoreAdjustments, cloneMap[string, int])
	out.Standings = cloneMap(s.Standings)
	out.Meta.BasePoints = cloneMap(s.Meta.BasePoints)
	out.Meta.Championships = cloneMap(s.Meta.Championships)
	out.Meta.Drivers = cloneSlice(s.Meta.Drivers)
	out.Meta.RaceOverrides = cloneMap(s.Meta.RaceOverrides)
	if s.Futbol != nil {
		f := s.Futbol.clone()
		out.Futbol = &f
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneMapFunc[K comparable, V any](m map[K]V, f func(V) V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = f(v)
	}
	return out
}

func cloneNested[V any](m map[string]map[string]V, f func(V) V) map[string]map[string]V {
	return cloneMapFunc(m, func(inner map[string]V) map[string]V {
		return cloneMapFunc(inner, f)
	})
}

func cloneSlice[V any](s []V) []V {
	if s == nil {
		return nil
	}
	out := make([]V, len(s))
	copy(out, s)
	return out
}
