package scoring_test

import (
	"testing"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func goals(h, a int) model.Goals {
	return model.Goals{Home: model.IntPtr(h), Away: model.IntPtr(a)}
}

func futbolState(bet *model.FutbolBet, res *model.FutbolResult) model.State {
	f := &model.FutbolState{
		Order: []string{"j1"},
		Jornadas: map[string]model.Jornada{
			"j1": {ID: "j1", Name: "Jornada 1", Matches: []model.Fixture{
				{Home: "Betis", Away: "Sevilla"},
				{Home: "Girona", Away: "Barcelona"},
				{Home: "Athletic", Away: "Real Madrid"},
				{Home: "Atlético", Away: "Real Sociedad"},
			}},
		},
		Questions: map[string][]string{"j1": {"¿Empate en el derbi?", "¿Más de 2 goles?", "¿Portería a cero?"}},
	}
	if bet != nil {
		f.Bets = map[string]map[string]model.FutbolBet{"j1": {"ana": *bet}}
	}
	if res != nil {
		f.Results = map[string]*model.FutbolResult{"j1": res}
	}
	return model.State{
		Participants: map[string]model.Participant{"ana": {Name: "ana"}},
		Futbol:       f,
	}
}

func TestMatchPoints(t *testing.T) {
	Convey("Given official and predicted scorelines", t, func() {
		Convey("An exact scoreline earns three points", func() {
			out := scoring.MatchPoints(goals(2, 1), goals(2, 1))
			So(out.Points, ShouldEqual, 3)
			So(out.Exact, ShouldBeTrue)
		})

		Convey("A correct sign with the wrong score earns one point", func() {
			out := scoring.MatchPoints(goals(1, 0), goals(3, 1))
			So(out.Points, ShouldEqual, 1)
			So(out.Exact, ShouldBeFalse)
			So(out.Sign, ShouldBeTrue)
		})

		Convey("A wrong sign earns nothing", func() {
			out := scoring.MatchPoints(goals(0, 2), goals(3, 1))
			So(out.Points, ShouldEqual, 0)
		})

		Convey("A scoreline with a blank side earns nothing, even 0-0 style", func() {
			out := scoring.MatchPoints(model.Goals{Home: model.IntPtr(0)}, goals(0, 0))
			So(out.Points, ShouldEqual, 0)
			So(scoring.Sign(model.Goals{Home: model.IntPtr(0)}), ShouldEqual, "")
		})
	})
}

func TestScoreJornada(t *testing.T) {
	res := &model.FutbolResult{
		Matches:  []model.Goals{goals(2, 1), goals(0, 0), goals(1, 3), goals(2, 2)},
		QAnswers: []string{"sí", "no", "sí"},
	}

	Convey("Given a matchday with an official result", t, func() {
		Convey("When the prediction mixes exact, sign, and wrong picks", func() {
			bet := &model.FutbolBet{
				Matches:   []model.Goals{goals(2, 1), goals(1, 1), goals(2, 0), goals(0, 0)},
				Questions: []string{"Sí", "no", "no"},
			}
			sc := scoring.ScoreJornada(futbolState(bet, res), "j1", "ana")

			Convey("Then exact earns 3, sign 1, and each right answer 2", func() {
				So(sc.Exact, ShouldEqual, 1)
				So(sc.Signs, ShouldEqual, 2)
				So(sc.QHits, ShouldEqual, 2)
				So(sc.Points, ShouldEqual, 3+1+0+1+2+2)
				So(sc.Missed, ShouldBeFalse)
				So(sc.CatPenalty, ShouldEqual, 0)
			})

			Convey("And the breakdown names the home side of each match", func() {
				So(sc.Items[0].Label, ShouldStartWith, "Betis")
				So(sc.Items[4].Label, ShouldEqual, "Pregunta 1: Sí vs sí")
				So(sc.Items, ShouldHaveLength, 4+3)
			})
		})

		Convey("When the prediction is perfect", func() {
			bet := &model.FutbolBet{
				Matches:   []model.Goals{goals(2, 1), goals(0, 0), goals(1, 3), goals(2, 2)},
				Questions: []string{"sí", "no", "sí"},
			}
			sc := scoring.ScoreJornada(futbolState(bet, res), "j1", "ana")

			Convey("Then it reaches the matchday ceiling", func() {
				So(sc.Points, ShouldEqual, scoring.MaxJornadaPoints)
			})
		})

		Convey("When there is no prediction", func() {
			sc := scoring.ScoreJornada(futbolState(nil, res), "j1", "ana")

			Convey("Then the missed penalty applies with its line item", func() {
				So(sc.Missed, ShouldBeTrue)
				So(sc.MissedPenalty, ShouldEqual, -2)
				So(sc.Points, ShouldEqual, -2)
				last := sc.Items[len(sc.Items)-1]
				So(last.Label, ShouldEqual, "Sin apuesta a tiempo")
			})
		})

		Convey("When a perfect prediction arrived late", func() {
			bet := &model.FutbolBet{
				Matches:   []model.Goals{goals(2, 1), goals(0, 0), goals(1, 3), goals(2, 2)},
				Questions: []string{"sí", "no", "sí"},
				Late:      true,
			}
			sc := scoring.ScoreJornada(futbolState(bet, res), "j1", "ana")

			Convey("Then none of its picks score and only the missed penalty remains", func() {
				So(sc.Missed, ShouldBeTrue)
				So(sc.Late, ShouldBeTrue)
				So(sc.Exact, ShouldEqual, 0)
				So(sc.Signs, ShouldEqual, 0)
				So(sc.QHits, ShouldEqual, 0)
				So(sc.Points, ShouldEqual, -2)
			})

			Convey("And the breakdown shows empty picks against the result", func() {
				So(sc.Items[0].Label, ShouldEqual, "Betis ?-? vs 2-1")
				So(sc.Items[4].Label, ShouldEqual, "Pregunta 1: — vs sí")
			})
		})

		Convey("When a timely prediction earns zero hit points", func() {
			bet := &model.FutbolBet{
				Matches:   []model.Goals{goals(0, 2), goals(1, 0), goals(3, 0), goals(1, 0)},
				Questions: []string{"no", "sí", "no"},
			}
			sc := scoring.ScoreJornada(futbolState(bet, res), "j1", "ana")

			Convey("Then the catastrophe penalty applies instead of the missed one", func() {
				So(sc.Missed, ShouldBeFalse)
				So(sc.CatPenalty, ShouldEqual, -1)
				So(sc.Points, ShouldEqual, -1)
				last := sc.Items[len(sc.Items)-1]
				So(last.Label, ShouldEqual, "Apuesta catastrófica")
			})
		})

		Convey("When official answers are blank", func() {
			blank := &model.FutbolResult{
				Matches:  res.Matches,
				QAnswers: []string{"", "", ""},
			}
			bet := &model.FutbolBet{
				Matches:   []model.Goals{goals(2, 1), goals(0, 0), goals(1, 3), goals(2, 2)},
				Questions: []string{"", "", ""},
			}
			sc := scoring.ScoreJornada(futbolState(bet, blank), "j1", "ana")

			Convey("Then blank-for-blank never earns question points", func() {
				So(sc.QHits, ShouldEqual, 0)
				So(sc.Points, ShouldEqual, 12)
			})
		})
	})

	Convey("Given a matchday with no official result", t, func() {
		bet := &model.FutbolBet{Matches: []model.Goals{goals(1, 0)}, Late: true}
		sc := scoring.ScoreJornada(futbolState(bet, nil), "j1", "ana")

		Convey("Then the matchday is pending and contributes nothing", func() {
			So(sc.Pending, ShouldBeTrue)
			So(sc.Points, ShouldEqual, 0)
			So(sc.Late, ShouldBeTrue)
			So(sc.Items, ShouldBeEmpty)
		})
	})
}
