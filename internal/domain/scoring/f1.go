package scoring

import (
	"fmt"

	"github.com/birreros/porra/internal/domain/model"
)

// RaceScore is the full breakdown of one participant's score for one race.
type RaceScore struct {
	Points          int  `json:"points"`
	TB1             int  `json:"tb1"`
	Hits            int  `json:"hits"`
	Exact           int  `json:"exact"`
	Penalties       int  `json:"pen"`
	GotPole         bool `json:"gotPole"`
	GotAllPodium    bool `json:"gotAllPodium"`
	GotAllQuestions bool `json:"gotAllQuestions"`
	FullHouse       bool `json:"fullHouse"`
	ManualAdj       int  `json:"manualAdj"`
}

// ScoreRace scores one participant's prediction for one race. A missing
// prediction scores zero with the worst possible tie-break and no manual
// adjustment. A pending result (no official outcome yet) still applies the
// late and incomplete penalties and any manual adjustment, but awards no
// hit points.
func ScoreRace(s model.State, eventKey, name string) RaceScore {
	bet, ok := s.RaceBetFor(eventKey, name)
	if !ok {
		return RaceScore{TB1: tbMissingBet}
	}

	res := s.RaceResultFor(eventKey)
	sc := RaceScore{ManualAdj: s.AdjustmentFor(eventKey, name)}

	if res != nil && res.Pole != "" && bet.Pole == res.Pole {
		sc.Points++
		sc.Hits++
		sc.GotPole = true
	}

	officialPodium := func(i int) string {
		if res == nil {
			return ""
		}
		return model.At(res.Podium, i)
	}
	for i, p := range bet.Podium {
		if res != nil && p == officialPodium(i) {
			sc.Points++
			sc.Hits++
		}
	}
	if res != nil && res.Podium != nil && bet.Podium != nil {
		sc.GotAllPodium = true
		for i, p := range bet.Podium {
			if p != officialPodium(i) {
				sc.GotAllPodium = false
				break
			}
		}
	}
	if sc.GotAllPodium {
		sc.Exact = 1
	}
	if sc.GotPole && sc.GotAllPodium {
		sc.Points += podiumBonus
	}

	if res != nil && res.QAnswers != nil {
		sc.GotAllQuestions = bet.Answers != nil
		for i, a := range bet.Answers {
			if normAnswer(a) == normAnswer(model.At(res.QAnswers, i)) {
				sc.Points++
				sc.Hits++
			} else {
				sc.GotAllQuestions = false
			}
		}
		if sc.GotPole && sc.GotAllPodium && sc.GotAllQuestions {
			sc.Points += fullHouseBonus
			sc.FullHouse = true
		}
	}

	if bet.Pole == "" && countFilled(bet.Podium) < 3 {
		sc.Points += incompletePenalty
		sc.Penalties++
	}
	if bet.Late {
		sc.Points += latePenalty
		sc.Penalties++
	}

	sc.TB1 = podiumTieBreak(bet.Podium, res)
	sc.Points += sc.ManualAdj
	return sc
}

// podiumTieBreak sums the 1-based official finishing positions of the
// predicted podium drivers. Drivers outside the official podium, or any
// driver before a result exists, count as unplaced. Lower is better.
func podiumTieBreak(podium []string, res *model.RaceResult) int {
	sum := 0
	for i := 0; i < len(podium) && i < 3; i++ {
		pos := tbUnplaced
		if res != nil {
			for j, d := range res.Podium {
				if d == podium[i] {
					pos = j + 1
					break
				}
			}
		}
		sum += pos
	}
	return sum
}

func countFilled(ss []string) int {
	n := 0
	for _, s := range ss {
		if s != "" {
			n++
		}
	}
	return n
}

// DescribeRace renders a race score as display line items. The returned
// total matches ScoreRace's points for the same inputs.
func DescribeRace(s model.State, eventKey, name string) (int, []Item) {
	bet, ok := s.RaceBetFor(eventKey, name)
	if !ok {
		return 0, []Item{{Label: "Sin apuesta enviada", Delta: 0}}
	}

	res := s.RaceResultFor(eventKey)
	adj := s.AdjustmentFor(eventKey, name)

	var items []Item
	total := 0
	add := func(label string, delta int) {
		items = append(items, Item{Label: label, Delta: delta})
		total += delta
	}

	gotPole := false
	if res != nil && res.Pole != "" {
		d := 0
		if bet.Pole == res.Pole {
			d = 1
			gotPole = true
		}
		add(fmt.Sprintf("Pole: %s vs %s", orDash(bet.Pole), res.Pole), d)
	}

	// Rows follow the official arrays so a short prediction still renders
	// every decided slot.
	gotAllPodium := res != nil && res.Podium != nil && bet.Podium != nil
	if res != nil {
		for i, official := range res.Podium {
			p := model.At(bet.Podium, i)
			d := 0
			if p == official {
				d = 1
			} else {
				gotAllPodium = false
			}
			add(fmt.Sprintf("P%d: %s vs %s", i+1, orDash(p), orDash(official)), d)
		}
	}

	gotAllQuestions := false
	if res != nil && res.QAnswers != nil {
		gotAllQuestions = bet.Answers != nil
		for i, official := range res.QAnswers {
			a := model.At(bet.Answers, i)
			d := 0
			if normAnswer(a) == normAnswer(official) {
				d = 1
			} else {
				gotAllQuestions = false
			}
			add(fmt.Sprintf("Pregunta %d: %s vs %s", i+1, orDash(a), orDash(official)), d)
		}
	}

	if gotPole && gotAllPodium {
		add("Bonus pole + podio", podiumBonus)
	}
	if gotPole && gotAllPodium && gotAllQuestions {
		add("Bonus pleno (pole+podio+preguntas)", fullHouseBonus)
	}
	if bet.Pole == "" && countFilled(bet.Podium) < 3 {
		add("Penalización por apuesta incompleta", incompletePenalty)
	}
	if bet.Late {
		add("Penalización por fuera de plazo", latePenalty)
	}
	if adj != 0 {
		add("Ajuste manual", adj)
	}
	return total, items
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
