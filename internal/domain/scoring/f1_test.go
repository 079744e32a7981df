package scoring_test

import (
	"testing"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func raceState(bet *model.RaceBet, res *model.RaceResult) model.State {
	st := model.State{
		Participants: map[string]model.Participant{"ana": {Name: "ana"}},
	}
	if bet != nil {
		st.Bets = map[string]map[string]model.RaceBet{"gp1": {"ana": *bet}}
	}
	if res != nil {
		st.Results = map[string]*model.RaceResult{"gp1": res}
	}
	return st
}

func TestScoreRace(t *testing.T) {
	Convey("Given an official race result", t, func() {
		res := &model.RaceResult{
			Pole:     "Verstappen",
			Podium:   []string{"Verstappen", "Norris", "Leclerc"},
			QAnswers: []string{"sí", "2", "safety car"},
		}

		Convey("When the prediction nails everything", func() {
			bet := &model.RaceBet{
				Pole:    "Verstappen",
				Podium:  []string{"Verstappen", "Norris", "Leclerc"},
				Answers: []string{" Sí ", "2", "SAFETY CAR"},
			}
			sc := scoring.ScoreRace(raceState(bet, res), "gp1", "ana")

			Convey("Then it scores the full house: 1+3+3 hits plus both bonuses", func() {
				So(sc.Points, ShouldEqual, 11)
				So(sc.Hits, ShouldEqual, 7)
				So(sc.Exact, ShouldEqual, 1)
				So(sc.GotPole, ShouldBeTrue)
				So(sc.GotAllPodium, ShouldBeTrue)
				So(sc.GotAllQuestions, ShouldBeTrue)
				So(sc.FullHouse, ShouldBeTrue)
				So(sc.Penalties, ShouldEqual, 0)
			})

			Convey("And the tie-break sums official positions 1+2+3", func() {
				So(sc.TB1, ShouldEqual, 6)
			})
		})

		Convey("When the podium is right but out of order", func() {
			bet := &model.RaceBet{
				Pole:    "Norris",
				Podium:  []string{"Norris", "Verstappen", "Leclerc"},
				Answers: []string{"no", "no", "no"},
			}
			sc := scoring.ScoreRace(raceState(bet, res), "gp1", "ana")

			Convey("Then the podium is not exact and the tie-break still sums placements", func() {
				So(sc.Exact, ShouldEqual, 0)
				So(sc.Points, ShouldEqual, 1)
				So(sc.TB1, ShouldEqual, 2+1+3)
			})
		})

		Convey("When a predicted driver is off the official podium", func() {
			bet := &model.RaceBet{
				Pole:   "Verstappen",
				Podium: []string{"Verstappen", "Hamilton", "Leclerc"},
			}
			sc := scoring.ScoreRace(raceState(bet, res), "gp1", "ana")

			Convey("Then that slot counts as unplaced in the tie-break", func() {
				So(sc.TB1, ShouldEqual, 1+99+3)
				So(sc.GotAllPodium, ShouldBeFalse)
			})
		})

		Convey("When the prediction was submitted late", func() {
			bet := &model.RaceBet{
				Pole:   "Verstappen",
				Podium: []string{"Verstappen", "Norris", "Leclerc"},
				Late:   true,
			}
			sc := scoring.ScoreRace(raceState(bet, res), "gp1", "ana")

			Convey("Then three points are deducted", func() {
				So(sc.Penalties, ShouldEqual, 1)
				So(sc.Points, ShouldEqual, 1+3+2-3)
			})
		})

		Convey("When the prediction has no pole and a half-empty podium", func() {
			bet := &model.RaceBet{
				Podium:  []string{"Verstappen", "", ""},
				Answers: []string{"", "", ""},
			}
			sc := scoring.ScoreRace(raceState(bet, res), "gp1", "ana")

			Convey("Then the incomplete penalty applies on top of any hits", func() {
				So(sc.Penalties, ShouldEqual, 1)
				So(sc.Points, ShouldEqual, 1-1)
			})
		})

		Convey("When a manual adjustment exists for the participant", func() {
			bet := &model.RaceBet{Pole: "Verstappen", Podium: []string{"", "", ""}}
			st := raceState(bet, res)
			st.ScoreAdjustments = map[string]map[string]int{"gp1": {"ana": 4}}
			sc := scoring.ScoreRace(st, "gp1", "ana")

			Convey("Then it is added after everything else", func() {
				So(sc.ManualAdj, ShouldEqual, 4)
				So(sc.Points, ShouldEqual, 1+4)
			})
		})
	})

	Convey("Given no prediction at all", t, func() {
		st := raceState(nil, &model.RaceResult{Pole: "Verstappen", Podium: []string{"Verstappen", "Norris", "Leclerc"}})
		st.ScoreAdjustments = map[string]map[string]int{"gp1": {"ana": 5}}
		sc := scoring.ScoreRace(st, "gp1", "ana")

		Convey("Then the score is zero with the worst tie-break, ignoring adjustments", func() {
			So(sc.Points, ShouldEqual, 0)
			So(sc.TB1, ShouldEqual, 999)
			So(sc.ManualAdj, ShouldEqual, 0)
		})
	})

	Convey("Given a prediction with no official result yet", t, func() {
		bet := &model.RaceBet{
			Pole:   "Verstappen",
			Podium: []string{"Verstappen", "Norris", "Leclerc"},
			Late:   true,
		}
		sc := scoring.ScoreRace(raceState(bet, nil), "gp1", "ana")

		Convey("Then no hits score but the late penalty still applies", func() {
			So(sc.Hits, ShouldEqual, 0)
			So(sc.Points, ShouldEqual, -3)
			So(sc.TB1, ShouldEqual, 3*99)
		})
	})
}

func TestDescribeRace(t *testing.T) {
	Convey("Given a scored race", t, func() {
		res := &model.RaceResult{
			Pole:     "Verstappen",
			Podium:   []string{"Verstappen", "Norris", "Leclerc"},
			QAnswers: []string{"sí", "2", "safety car"},
		}
		bet := &model.RaceBet{
			Pole:    "Verstappen",
			Podium:  []string{"Verstappen", "Norris", "Leclerc"},
			Answers: []string{"sí", "2", "safety car"},
		}
		st := raceState(bet, res)
		st.ScoreAdjustments = map[string]map[string]int{"gp1": {"ana": -2}}

		Convey("When describing the bet against the result", func() {
			total, items := scoring.DescribeRace(st, "gp1", "ana")

			Convey("Then the line items add up to the score", func() {
				sc := scoring.ScoreRace(st, "gp1", "ana")
				So(total, ShouldEqual, sc.Points)
				sum := 0
				for _, it := range items {
					sum += it.Delta
				}
				So(sum, ShouldEqual, total)
			})

			Convey("And both bonuses and the adjustment show as items", func() {
				labels := make([]string, len(items))
				for i, it := range items {
					labels[i] = it.Label
				}
				So(labels, ShouldContain, "Bonus pole + podio")
				So(labels, ShouldContain, "Bonus pleno (pole+podio+preguntas)")
				So(labels, ShouldContain, "Ajuste manual")
			})
		})

		Convey("When the bet left podium slots and answers empty", func() {
			short := raceState(&model.RaceBet{Pole: "Verstappen", Podium: []string{"Verstappen"}}, res)
			_, items := scoring.DescribeRace(short, "gp1", "ana")

			Convey("Then every decided slot still gets a line", func() {
				labels := make([]string, len(items))
				for i, it := range items {
					labels[i] = it.Label
				}
				So(labels, ShouldContain, "P2: — vs Norris")
				So(labels, ShouldContain, "P3: — vs Leclerc")
				So(labels, ShouldContain, "Pregunta 3: — vs safety car")
				So(items, ShouldHaveLength, 1+3+3)
			})
		})

		Convey("When there is no bet", func() {
			total, items := scoring.DescribeRace(model.State{}, "gp1", "ana")

			Convey("Then a single zero line says so", func() {
				So(total, ShouldEqual, 0)
				So(items, ShouldHaveLength, 1)
				So(items[0].Label, ShouldEqual, "Sin apuesta enviada")
			})
		})
	})
}
