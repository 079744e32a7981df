package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/birreros/porra/internal/adapters/remote"
	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeEndpoint struct {
	mu       sync.Mutex
	snapshot []byte
	secrets  []string
	puts     int
}

func (f *fakeEndpoint) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.secrets = append(f.secrets, r.Header.Get("x-porra-secret"))
		switch r.Method {
		case http.MethodGet:
			if f.snapshot == nil {
				http.NotFound(w, r)
				return
			}
			w.Write(f.snapshot)
		case http.MethodPut:
			var st model.State
			if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.snapshot, _ = json.Marshal(st)
			f.puts++
			w.WriteHeader(http.StatusNoContent)
		}
	})
}

func (f *fakeEndpoint) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty remote endpoint", t, func() {
		endpoint := &fakeEndpoint{}
		srv := httptest.NewServer(endpoint.handler())
		defer srv.Close()

		client, err := remote.NewClient(srv.URL, remote.WithSecret("hush"))
		So(err, ShouldBeNil)

		Convey("When fetching before anything was pushed", func() {
			_, ok, err := client.Fetch(ctx)

			Convey("Then absence is not an error", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a snapshot is pushed and fetched back", func() {
			st := model.State{Participants: map[string]model.Participant{"ana": {Name: "ana"}}}
			So(client.Push(ctx, st), ShouldBeNil)

			got, ok, err := client.Fetch(ctx)

			Convey("Then the snapshot round-trips", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(got.Participants["ana"].Name, ShouldEqual, "ana")
			})

			Convey("And every request carried the shared secret", func() {
				for _, s := range endpoint.secrets {
					So(s, ShouldEqual, "hush")
				}
			})
		})
	})

	Convey("Given an endpoint that rejects everything", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer srv.Close()

		client, err := remote.NewClient(srv.URL)
		So(err, ShouldBeNil)

		Convey("Then fetch and push surface the status sentinel", func() {
			_, _, err := client.Fetch(ctx)
			So(errors.Is(err, remote.ErrBadStatus), ShouldBeTrue)
			So(errors.Is(client.Push(ctx, model.State{}), remote.ErrBadStatus), ShouldBeTrue)
		})
	})

	Convey("Given no base URL", t, func() {
		_, err := remote.NewClient("")
		So(err, ShouldEqual, remote.ErrNoBaseURL)
	})
}

func TestPusher(t *testing.T) {
	Convey("Given a running pusher with a short interval", t, func() {
		endpoint := &fakeEndpoint{}
		srv := httptest.NewServer(endpoint.handler())
		defer srv.Close()

		client, err := remote.NewClient(srv.URL)
		So(err, ShouldBeNil)
		pusher := remote.NewPusher(client, remote.WithPushInterval(50*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go pusher.Run(ctx)

		Convey("When a burst of snapshots is offered", func() {
			for i := 0; i < 5; i++ {
				pusher.Offer(model.State{Meta: model.Meta{BasePoints: map[string]int{"ana": i}}})
			}

			shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
			defer stop()
			So(pusher.Shutdown(shutdownCtx), ShouldBeNil)

			Convey("Then the burst coalesces and the newest snapshot wins", func() {
				So(endpoint.putCount(), ShouldBeBetweenOrEqual, 1, 2)
				got, ok, err := client.Fetch(context.Background())
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(got.Meta.BasePoints["ana"], ShouldEqual, 4)
			})
		})

		Convey("When a snapshot is offered and the pusher shuts down immediately", func() {
			pusher.Offer(model.State{Meta: model.Meta{Seeded: true}})

			shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
			defer stop()
			So(pusher.Shutdown(shutdownCtx), ShouldBeNil)

			Convey("Then the final flush still delivers it", func() {
				got, ok, err := client.Fetch(context.Background())
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(got.Meta.Seeded, ShouldBeTrue)
			})
		})
	})
}
