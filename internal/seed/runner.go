package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Run executes a full seeding pass against a running service.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	r := &runner{
		cfg:   cfg,
		gen:   NewGenerator(cfg.Seed),
		http:  &http.Client{Timeout: timeout},
		log:   logger.Get().Named("seed"),
		stats: &Stats{},
	}
	start := time.Now()
	if err := r.run(ctx); err != nil {
		return r.stats, err
	}
	r.stats.Duration = time.Since(start)
	return r.stats, nil
}

type runner struct {
	cfg   *Config
	gen   *Generator
	http  *http.Client
	log   logger.Logger
	stats *Stats
}

func (r *runner) run(ctx context.Context) error {
	for _, name := range r.cfg.Participants {
		if err := r.post(ctx, "/participants", map[string]string{"name": name}); err != nil {
			return fmt.Errorf("register participant %s: %w", name, err)
		}
		r.stats.ParticipantsCreated++
	}
	r.log.Info(ctx, "participants registered", logger.Int("count", r.stats.ParticipantsCreated))

	if err := r.seedRaces(ctx); err != nil {
		return err
	}
	if err := r.seedJornadas(ctx); err != nil {
		return err
	}
	r.log.Info(ctx, "seeding finished",
		logger.Int("raceBets", r.stats.RaceBetsSubmitted),
		logger.Int("futbolBets", r.stats.FutbolBetsSubmitted),
		logger.Int("results", r.stats.ResultsPublished),
		logger.Int("failed", r.stats.Failed),
	)
	return nil
}

func (r *runner) seedRaces(ctx context.Context) error {
	var races []model.Race
	if err := r.get(ctx, "/races", &races); err != nil {
		return fmt.Errorf("fetch calendar: %w", err)
	}
	if len(races) > r.cfg.NumRaces {
		races = races[:r.cfg.NumRaces]
	}
	for _, race := range races {
		for _, name := range r.cfg.Participants {
			pole, podium, answers := r.gen.RaceBet()
			err := r.post(ctx, "/bets", map[string]any{
				"game": "f1", "event": race.Key, "participant": name,
				"pole": pole, "podium": podium, "q": answers,
			})
			if err != nil {
				r.stats.Failed++
				r.log.Warn(ctx, "race bet failed", logger.String("event", race.Key), logger.Error(err))
				continue
			}
			r.stats.RaceBetsSubmitted++
		}
		pole, podium, answers := r.gen.RaceResult()
		err := r.post(ctx, "/results", map[string]any{
			"game": "f1", "event": race.Key,
			"pole": pole, "podium": podium, "qAnswers": answers,
		})
		if err != nil {
			r.stats.Failed++
			continue
		}
		r.stats.ResultsPublished++
	}
	return nil
}

func (r *runner) seedJornadas(ctx context.Context) error {
	for n := 0; n < r.cfg.NumJornadas; n++ {
		j := r.gen.Jornada(n)
		payload := map[string]any{
			"id": j.ID, "name": j.Name, "deadline": j.Deadline,
			"matches": j.Matches, "questions": r.gen.Questions(n),
		}
		if err := r.post(ctx, "/jornadas", payload); err != nil {
			return fmt.Errorf("create jornada %s: %w", j.ID, err)
		}
		r.stats.JornadasCreated++

		for _, name := range r.cfg.Participants {
			err := r.post(ctx, "/bets", map[string]any{
				"game": "futbol", "event": j.ID, "participant": name,
				"matches": r.gen.Scorelines(), "questions": r.gen.FutbolAnswers(),
			})
			if err != nil {
				r.stats.Failed++
				continue
			}
			r.stats.FutbolBetsSubmitted++
		}
		err := r.post(ctx, "/results", map[string]any{
			"game": "futbol", "event": j.ID,
			"matches": r.gen.Scorelines(), "qAnswers": r.gen.FutbolAnswers(),
		})
		if err != nil {
			r.stats.Failed++
			continue
		}
		r.stats.ResultsPublished++
	}
	return nil
}

func (r *runner) post(ctx context.Context, path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}
	return nil
}

func (r *runner) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
