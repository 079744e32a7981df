package bets_test

import (
	"testing"
	"time"

	"github.com/birreros/porra/internal/domain/bets"
	"github.com/birreros/porra/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)

func goals(h, a int) model.Goals {
	return model.Goals{Home: model.IntPtr(h), Away: model.IntPtr(a)}
}

func TestSubmitRace(t *testing.T) {
	payload := bets.RacePayload{
		Pole:    "Verstappen",
		Podium:  []string{"Verstappen", "Norris", "Leclerc"},
		Answers: []string{"sí", "no", "1"},
	}

	Convey("Given a fresh state", t, func() {
		s := model.State{Participants: map[string]model.Participant{"ana": {Name: "ana"}}}

		Convey("When a prediction is submitted for the first time", func() {
			next, audit := bets.SubmitRace(s, "bahrain", "ana", payload, now, false)

			Convey("Then the bet is stored padded and an audit entry appended", func() {
				bet, ok := next.RaceBetFor("bahrain", "ana")
				So(ok, ShouldBeTrue)
				So(bet.Pole, ShouldEqual, "Verstappen")
				So(bet.Podium, ShouldHaveLength, 3)
				So(audit, ShouldNotBeNil)
				So(audit.ID, ShouldNotBeEmpty)
				So(next.BetHistory["bahrain"]["ana"], ShouldHaveLength, 1)
			})

			Convey("And the input state is untouched", func() {
				So(s.Bets, ShouldBeNil)
			})

			Convey("When the identical pick is resubmitted later", func() {
				later := now.Add(time.Hour)
				again, audit2 := bets.SubmitRace(next, "bahrain", "ana", payload, later, false)

				Convey("Then the timestamp refreshes but the history does not grow", func() {
					So(audit2, ShouldBeNil)
					So(again.BetHistory["bahrain"]["ana"], ShouldHaveLength, 1)
					bet, _ := again.RaceBetFor("bahrain", "ana")
					So(bet.SubmittedAt.Equal(later), ShouldBeTrue)
				})
			})

			Convey("When the same pick comes back past the deadline", func() {
				again, audit2 := bets.SubmitRace(next, "bahrain", "ana", payload, now, true)

				Convey("Then the late flag sticks without a new history entry", func() {
					So(audit2, ShouldBeNil)
					bet, _ := again.RaceBetFor("bahrain", "ana")
					So(bet.Late, ShouldBeTrue)
					So(again.BetHistory["bahrain"]["ana"], ShouldHaveLength, 1)
				})
			})

			Convey("When the pole pick changes", func() {
				changed := payload
				changed.Pole = "Norris"
				again, audit2 := bets.SubmitRace(next, "bahrain", "ana", changed, now, false)

				Convey("Then a second history entry is appended", func() {
					So(audit2, ShouldNotBeNil)
					So(again.BetHistory["bahrain"]["ana"], ShouldHaveLength, 2)
				})
			})
		})
	})
}

func TestAdminEditRace(t *testing.T) {
	payload := bets.RacePayload{Pole: "Verstappen", Podium: []string{"Verstappen", "Norris", "Leclerc"}}

	Convey("Given a participant's own submitted prediction", t, func() {
		s, _ := bets.SubmitRace(model.State{}, "bahrain", "ana", payload, now, false)

		Convey("When an admin flips only the late flag", func() {
			next, audit := bets.AdminEditRace(s, "bahrain", "ana", payload, now, true)

			Convey("Then that alone is material and the entry is marked admin-made", func() {
				So(audit, ShouldNotBeNil)
				So(audit.EditedByAdmin, ShouldBeTrue)
				bet, _ := next.RaceBetFor("bahrain", "ana")
				So(bet.AdminEdited, ShouldBeTrue)
				So(next.BetHistory["bahrain"]["ana"], ShouldHaveLength, 2)
			})

			Convey("And the admin mark survives the participant's next resubmission", func() {
				again, _ := bets.SubmitRace(next, "bahrain", "ana", payload, now, false)
				bet, _ := again.RaceBetFor("bahrain", "ana")
				So(bet.AdminEdited, ShouldBeTrue)
			})
		})

		Convey("When an admin re-enters the identical prediction", func() {
			_, audit := bets.AdminEditRace(s, "bahrain", "ana", payload, now, false)

			Convey("Then nothing is appended", func() {
				So(audit, ShouldBeNil)
			})
		})
	})
}

func TestSubmitJornada(t *testing.T) {
	payload := bets.FutbolPayload{
		Matches:   []model.Goals{goals(2, 1), goals(0, 0)},
		Questions: []string{"sí", "no"},
	}

	Convey("Given a fresh state", t, func() {
		s := model.State{}

		Convey("When a matchday prediction is submitted twice unchanged", func() {
			first, audit1 := bets.SubmitJornada(s, "j1", "ana", payload, now, false)
			_, audit2 := bets.SubmitJornada(first, "j1", "ana", payload, now.Add(time.Minute), false)

			Convey("Then only the first submission reaches the history", func() {
				So(audit1, ShouldNotBeNil)
				So(audit2, ShouldBeNil)
				So(first.Futbol.BetHistory["j1"]["ana"], ShouldHaveLength, 1)
			})
		})

		Convey("When the same pick crosses the deadline", func() {
			first, _ := bets.SubmitJornada(s, "j1", "ana", payload, now, false)
			next, audit := bets.SubmitJornada(first, "j1", "ana", payload, now, true)

			Convey("Then the late resubmission is recorded", func() {
				So(audit, ShouldNotBeNil)
				So(audit.Late, ShouldBeTrue)
				So(next.Futbol.BetHistory["j1"]["ana"], ShouldHaveLength, 2)
			})
		})

		Convey("When an admin rewrites the prediction", func() {
			first, _ := bets.SubmitJornada(s, "j1", "ana", payload, now, false)
			edited := bets.FutbolPayload{Matches: []model.Goals{goals(1, 1), goals(0, 0)}}
			next := bets.AdminEditJornada(first, "j1", "ana", edited, now, false)

			Convey("Then the bet is replaced and marked but the history is untouched", func() {
				bet, _ := next.FutbolBetFor("j1", "ana")
				So(bet.AdminEdited, ShouldBeTrue)
				So(*bet.Matches[0].Home, ShouldEqual, 1)
				So(next.Futbol.BetHistory["j1"]["ana"], ShouldHaveLength, 1)
			})
		})
	})
}

func TestJornadaLifecycle(t *testing.T) {
	Convey("Given a saved matchday with bets, a result, and overrides", t, func() {
		j := model.Jornada{ID: "j1", Matches: []model.Fixture{{Home: "Betis", Away: "Sevilla"}}}
		s := bets.SaveJornada(model.State{}, j, []string{"¿Empate?"})
		s, _ = bets.SubmitJornada(s, "j1", "ana", bets.FutbolPayload{Matches: []model.Goals{goals(1, 0)}}, now, false)
		s = bets.SetJornadaResult(s, "j1", model.FutbolResult{Matches: []model.Goals{goals(1, 0)}})
		s = bets.SetJornadaWindow(s, "j1", bets.WindowOpen)
		s = bets.SetJornadaReveal(s, "j1", true)

		Convey("Then saving filled in the display name and order", func() {
			So(s.Futbol.Jornadas["j1"].Name, ShouldEqual, "j1")
			So(s.Futbol.Order, ShouldResemble, []string{"j1"})
		})

		Convey("When the matchday is saved again", func() {
			again := bets.SaveJornada(s, model.Jornada{ID: "j1", Name: "Jornada 1"}, nil)

			Convey("Then the order gains no duplicate", func() {
				So(again.Futbol.Order, ShouldResemble, []string{"j1"})
				So(again.Futbol.Jornadas["j1"].Name, ShouldEqual, "Jornada 1")
			})
		})

		Convey("When the matchday is deleted", func() {
			next := bets.DeleteJornada(s, "j1")

			Convey("Then everything keyed by it goes except the bet history", func() {
				So(next.Futbol.Jornadas, ShouldBeEmpty)
				So(next.Futbol.Order, ShouldBeEmpty)
				So(next.Futbol.Questions, ShouldBeEmpty)
				So(next.Futbol.Results, ShouldBeEmpty)
				So(next.Futbol.Bets, ShouldBeEmpty)
				So(next.Futbol.BetsWindow, ShouldBeEmpty)
				So(next.Futbol.BetsReveal, ShouldBeEmpty)
				So(next.Futbol.BetHistory["j1"]["ana"], ShouldHaveLength, 1)
			})
		})
	})
}

func TestSetAdjustment(t *testing.T) {
	Convey("Given a manual adjustment", t, func() {
		s := bets.SetAdjustment(model.State{}, "bahrain", "ana", 4)
		So(s.AdjustmentFor("bahrain", "ana"), ShouldEqual, 4)

		Convey("When it is set back to zero", func() {
			next := bets.SetAdjustment(s, "bahrain", "ana", 0)

			Convey("Then the emptied maps are pruned away", func() {
				So(next.AdjustmentFor("bahrain", "ana"), ShouldEqual, 0)
				So(next.ScoreAdjustments, ShouldBeNil)
			})
		})
	})
}

func TestParticipants(t *testing.T) {
	Convey("Given a registered participant", t, func() {
		s := bets.AddParticipant(model.State{}, "ana", now)

		Convey("When the same name registers again later", func() {
			next := bets.AddParticipant(s, "ana", now.Add(24*time.Hour))

			Convey("Then the original creation time is kept", func() {
				So(next.Participants["ana"].CreatedAt.Equal(now), ShouldBeTrue)
			})
		})

		Convey("When the participant is removed", func() {
			next := bets.RemoveParticipant(s, "ana")
			So(next.Participants, ShouldBeEmpty)
		})
	})
}

func TestWindowsAndReveal(t *testing.T) {
	Convey("Given window overrides for a race", t, func() {
		s := bets.SetRaceWindow(model.State{}, "bahrain", bets.WindowClosed)
		So(s.BetsWindow["bahrain"].ForceClosed, ShouldBeTrue)

		Convey("When the window is forced open", func() {
			next := bets.SetRaceWindow(s, "bahrain", bets.WindowOpen)
			So(next.BetsWindow["bahrain"].ForceOpen, ShouldBeTrue)
			So(next.BetsWindow["bahrain"].ForceClosed, ShouldBeFalse)
		})

		Convey("When the window returns to automatic", func() {
			next := bets.SetRaceWindow(s, "bahrain", bets.WindowAuto)
			So(next.BetsWindow, ShouldBeEmpty)
		})
	})

	Convey("Given a reveal override", t, func() {
		s := bets.SetRaceReveal(model.State{}, "bahrain", true)
		So(s.BetsReveal["bahrain"].ForceShow, ShouldBeTrue)
	})
}

func TestQuestionSheets(t *testing.T) {
	Convey("Given a race question sheet", t, func() {
		s := bets.AssignQuestionOwner(model.State{}, "bahrain", "ana")
		s = bets.SetRaceQuestions(s, "bahrain", []string{"¿Lluvia?"})

		Convey("Then the questions are stored padded to three slots", func() {
			So(s.Questions["bahrain"], ShouldResemble, []string{"¿Lluvia?", "", ""})
		})

		Convey("When the sheet is published for the first time", func() {
			next := bets.PublishRaceQuestions(s, "bahrain", "ana", now)
			status := next.QuestionsStatus["bahrain"]
			So(status.Published, ShouldBeTrue)
			So(status.Author, ShouldEqual, "ana")
			So(status.PublishedAt.Equal(now), ShouldBeTrue)
			So(status.UpdatedAt, ShouldBeNil)

			Convey("And republishing only refreshes the update time", func() {
				later := now.Add(time.Hour)
				again := bets.PublishRaceQuestions(next, "bahrain", "bea", later)
				status := again.QuestionsStatus["bahrain"]
				So(status.Author, ShouldEqual, "ana")
				So(status.UpdatedAt.Equal(later), ShouldBeTrue)
			})
		})

		Convey("When the sheet is locked", func() {
			next := bets.LockRaceQuestions(s, "bahrain", true)
			So(next.QuestionsStatus["bahrain"].Locked, ShouldBeTrue)
		})

		Convey("When the owner assignment is cleared", func() {
			next := bets.AssignQuestionOwner(s, "bahrain", "")
			So(next.QuestionOwner, ShouldBeEmpty)
		})
	})
}
