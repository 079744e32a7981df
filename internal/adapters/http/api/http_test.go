package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/birreros/porra/internal/adapters/http/api"
	service "github.com/birreros/porra/internal/app"
	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/internal/domain/standings"
	"github.com/birreros/porra/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, opts ...service.Option) *httptest.Server {
	t.Helper()
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc).Register(context.Background(), mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestBetAndStandingsFlow(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		register := func(name string) {
			resp := postJSON(t, ts.URL+"/participants", map[string]string{"name": name})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()
		}
		register("ana")
		register("bea")

		Convey("When a bet and a result are posted", func() {
			resp := postJSON(t, ts.URL+"/bets", map[string]any{
				"game":        "f1",
				"event":       "bahrain",
				"participant": "ana",
				"pole":        "Verstappen",
				"podium":      []string{"Verstappen", "Norris", "Leclerc"},
				"q":           []string{"sí", "no", "1"},
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			bet := decode[map[string]any](t, resp)
			So(bet["recorded"], ShouldBeTrue)
			So(bet["auditId"], ShouldNotBeEmpty)

			resp = postJSON(t, ts.URL+"/results", map[string]any{
				"game":     "f1",
				"event":    "bahrain",
				"pole":     "Verstappen",
				"podium":   []string{"Verstappen", "Norris", "Leclerc"},
				"qAnswers": []string{"sí", "no", "1"},
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			Convey("Then the standings endpoint ranks the field", func() {
				resp, err := http.Get(ts.URL + "/standings?game=f1")
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				table := decode[standings.Table](t, resp)
				So(table.Manual, ShouldBeFalse)
				So(table.Rows, ShouldHaveLength, 2)
				So(table.Rows[0].Name, ShouldEqual, "ana")
				So(table.Rows[0].Points, ShouldEqual, 11)
			})

			Convey("Then the score endpoint returns the breakdown", func() {
				resp, err := http.Get(ts.URL + "/score/f1/bahrain/ana")
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				score := decode[map[string]any](t, resp)
				So(score["points"], ShouldEqual, float64(11))
				So(score["items"], ShouldNotBeEmpty)
			})

			Convey("Then the stats endpoint sees the season", func() {
				resp, err := http.Get(ts.URL + "/stats")
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				resp.Body.Close()
			})
		})

		Convey("When an identical bet is posted twice", func() {
			body := map[string]any{
				"game": "f1", "event": "jeddah", "participant": "bea",
				"pole": "Norris", "podium": []string{"Norris", "Verstappen", "Leclerc"},
			}
			resp := postJSON(t, ts.URL+"/bets", body)
			first := decode[map[string]any](t, resp)
			resp = postJSON(t, ts.URL+"/bets", body)
			second := decode[map[string]any](t, resp)

			Convey("Then only the first one is recorded", func() {
				So(first["recorded"], ShouldBeTrue)
				So(second["recorded"], ShouldBeFalse)
			})
		})
	})
}

func TestRequestValidation(t *testing.T) {
	Convey("Given a running API server", t, func() {
		ts := newTestServer(t)

		Convey("Then the driver grid is served on /drivers", func() {
			ts := newTestServer(t, service.WithDrivers([]string{"Verstappen", "Leclerc"}))
			resp, err := http.Get(ts.URL + "/drivers")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(decode[[]string](t, resp), ShouldResemble, []string{"Verstappen", "Leclerc"})
		})

		Convey("Then an unknown game on /standings is a 400", func() {
			resp, err := http.Get(ts.URL + "/standings?game=curling")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close()
		})

		Convey("Then a bet without a participant is a 400", func() {
			resp := postJSON(t, ts.URL+"/bets", map[string]any{"game": "f1", "event": "bahrain"})
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close()
		})

		Convey("Then a bet for an unregistered participant is a 404", func() {
			resp := postJSON(t, ts.URL+"/bets", map[string]any{
				"game": "f1", "event": "bahrain", "participant": "nadie",
			})
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			resp.Body.Close()
		})

		Convey("Then a malformed score path is a 400", func() {
			resp, err := http.Get(ts.URL + "/score/f1/bahrain")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			resp.Body.Close()
		})

		Convey("Then the wrong method is a 405", func() {
			resp, err := http.Get(ts.URL + "/bets")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
			resp.Body.Close()
		})
	})
}

func TestJornadaEndpoints(t *testing.T) {
	Convey("Given a server with a registered participant", t, func() {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/participants", map[string]string{"name": "ana"})
		resp.Body.Close()

		Convey("When a matchday is created, bet on, and resolved", func() {
			resp := postJSON(t, ts.URL+"/jornadas", map[string]any{
				"id":        "j1",
				"name":      "Jornada 1",
				"matches":   []map[string]string{{"home": "Betis", "away": "Sevilla"}},
				"questions": []string{"¿Empate?"},
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			resp = postJSON(t, ts.URL+"/bets", map[string]any{
				"game": "futbol", "event": "j1", "participant": "ana",
				"matches": []map[string]int{{"home": 1, "away": 0}},
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			resp = postJSON(t, ts.URL+"/results", map[string]any{
				"game": "futbol", "event": "j1",
				"matches": []map[string]int{{"home": 1, "away": 0}},
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			Convey("Then the matchday standings carry the exact hit", func() {
				resp, err := http.Get(ts.URL + "/standings?game=futbol&scope=j1")
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := decode[map[string][]standings.FutbolRow](t, resp)
				So(body["rows"], ShouldHaveLength, 1)
				So(body["rows"][0].Points, ShouldEqual, 3)
			})

			Convey("Then the matchday appears on the listing until deleted", func() {
				resp, err := http.Get(ts.URL + "/jornadas")
				So(err, ShouldBeNil)
				listed := decode[[]model.Jornada](t, resp)
				So(listed, ShouldHaveLength, 1)

				req, err := http.NewRequest(http.MethodDelete, ts.URL+"/jornadas?id=j1", nil)
				So(err, ShouldBeNil)
				del, err := http.DefaultClient.Do(req)
				So(err, ShouldBeNil)
				So(del.StatusCode, ShouldEqual, http.StatusOK)
				del.Body.Close()

				resp, err = http.Get(ts.URL + "/jornadas")
				So(err, ShouldBeNil)
				So(decode[[]model.Jornada](t, resp), ShouldBeEmpty)
			})
		})
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	Convey("Given a server with some state", t, func() {
		ts := newTestServer(t)
		resp := postJSON(t, ts.URL+"/participants", map[string]string{"name": "ana"})
		resp.Body.Close()

		Convey("When the snapshot is exported and imported into a second server", func() {
			resp, err := http.Get(ts.URL + "/export")
			So(err, ShouldBeNil)
			exported := decode[model.State](t, resp)
			So(exported.Participants, ShouldContainKey, "ana")
			So(exported.Standings, ShouldNotBeEmpty)

			other := newTestServer(t)
			imp := postJSON(t, other.URL+"/import", exported)
			So(imp.StatusCode, ShouldEqual, http.StatusOK)
			imp.Body.Close()

			Convey("Then the imported manual table governs until reset", func() {
				resp, err := http.Get(other.URL + "/standings")
				So(err, ShouldBeNil)
				table := decode[standings.Table](t, resp)
				So(table.Manual, ShouldBeTrue)

				reset := postJSON(t, other.URL+"/standings/reset", nil)
				So(reset.StatusCode, ShouldEqual, http.StatusOK)
				reset.Body.Close()

				resp, err = http.Get(other.URL + "/standings")
				So(err, ShouldBeNil)
				table = decode[standings.Table](t, resp)
				So(table.Manual, ShouldBeFalse)
				So(table.Rows, ShouldHaveLength, 1)
			})
		})
	})
}
