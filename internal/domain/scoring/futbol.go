package scoring

import (
	"fmt"

	"github.com/birreros/porra/internal/domain/model"
)

// MatchOutcome is the scoring of a single scoreline prediction.
type MatchOutcome struct {
	Points int  `json:"points"`
	Exact  bool `json:"exact"`
	Sign   bool `json:"sign"`
}

// JornadaScore is the full breakdown of one participant's score for one
// matchday.
type JornadaScore struct {
	Pending       bool   `json:"pending"`
	Points        int    `json:"points"`
	Exact         int    `json:"exact"`
	Signs         int    `json:"signs"`
	QHits         int    `json:"qHits"`
	Missed        bool   `json:"missed"`
	Late          bool   `json:"late"`
	CatPenalty    int    `json:"catPenalty"`
	MissedPenalty int    `json:"missedPenalty"`
	Items         []Item `json:"items"`
}

// Sign reduces a scoreline to its 1X2 outcome. An incomplete scoreline
// (either side not entered) has no sign.
func Sign(g model.Goals) string {
	if g.Home == nil || g.Away == nil {
		return ""
	}
	switch {
	case *g.Home > *g.Away:
		return "1"
	case *g.Home < *g.Away:
		return "2"
	default:
		return "X"
	}
}

// MatchPoints scores one predicted scoreline against the official one.
// Exact scorelines earn 3, a correct 1X2 sign earns 1, anything else 0.
// Incomplete scorelines on either side earn 0.
func MatchPoints(pred, official model.Goals) MatchOutcome {
	if pred.Home == nil || pred.Away == nil || official.Home == nil || official.Away == nil {
		return MatchOutcome{}
	}
	if *pred.Home == *official.Home && *pred.Away == *official.Away {
		return MatchOutcome{Points: exactScorePoints, Exact: true, Sign: true}
	}
	if s := Sign(pred); s != "" && s == Sign(official) {
		return MatchOutcome{Points: signPoints, Sign: true}
	}
	return MatchOutcome{}
}

// ScoreJornada scores one participant's prediction for one matchday.
// A matchday with no official result is pending and contributes nothing.
// A missing or late prediction scores the missed penalty; a timely
// prediction that earns zero hit points takes the catastrophe penalty
// instead.
func ScoreJornada(s model.State, jornadaID, name string) JornadaScore {
	res := s.FutbolResultFor(jornadaID)
	bet, hasBet := s.FutbolBetFor(jornadaID, name)
	if res == nil {
		return JornadaScore{Pending: true, Late: hasBet && bet.Late}
	}

	jornada, hasJornada := s.JornadaFor(jornadaID)
	sc := JornadaScore{Late: hasBet && bet.Late}

	// Only a timely bet is eligible for hit points. A late one keeps its
	// penalty and renders empty picks in the breakdown.
	var preds []model.Goals
	var answers []string
	if hasBet && !bet.Late {
		preds = bet.Matches
		answers = bet.Questions
	}

	for i, official := range res.Matches {
		pred := model.At(preds, i)
		out := MatchPoints(pred, official)
		sc.Points += out.Points
		if out.Exact {
			sc.Exact++
		} else if out.Sign {
			sc.Signs++
		}
		home := "Local"
		if hasJornada {
			if m := model.At(jornada.Matches, i); m.Home != "" {
				home = m.Home
			}
		}
		sc.Items = append(sc.Items, Item{
			Label: fmt.Sprintf("%s %s-%s vs %s-%s",
				home, goalText(pred.Home), goalText(pred.Away),
				goalText(official.Home), goalText(official.Away)),
			Delta: out.Points,
		})
	}

	for i, official := range res.QAnswers {
		sel := model.At(answers, i)
		d := 0
		if normAnswer(sel) != "" && normAnswer(official) != "" && normAnswer(sel) == normAnswer(official) {
			d = questionPoints
			sc.QHits++
		}
		sc.Points += d
		sc.Items = append(sc.Items, Item{
			Label: fmt.Sprintf("Pregunta %d: %s vs %s", i+1, orDash(sel), orDash(official)),
			Delta: d,
		})
	}

	if !hasBet || bet.Late {
		sc.Missed = true
		sc.MissedPenalty = missedPenalty
		sc.Points += missedPenalty
		sc.Items = append(sc.Items, Item{Label: "Sin apuesta a tiempo", Delta: missedPenalty})
	} else if sc.Points == 0 {
		sc.CatPenalty = catastrophePenalty
		sc.Points += catastrophePenalty
		sc.Items = append(sc.Items, Item{Label: "Apuesta catastrófica", Delta: catastrophePenalty})
	}
	return sc
}

func goalText(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *v)
}
