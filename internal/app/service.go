// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/birreros/porra/internal/adapters/remote"
	"github.com/birreros/porra/internal/adapters/repository"
	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/pkg/logger"
	"github.com/birreros/porra/pkg/metrics"
)

// Service owns the in-memory snapshot and coordinates persistence: every
// mutation produces a new snapshot, saves it locally, and offers it to
// the remote pusher. Reads never block writes for long; the snapshot is
// copied out under a read lock.
type Service struct {
	mu    sync.RWMutex
	state model.State

	races   []model.Race
	drivers []string
	store   repository.Store
	remote  *remote.Client
	pusher  *remote.Pusher

	statsTopLimit int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the local snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithRemote enables remote snapshot sync.
func WithRemote(client *remote.Client, pusher *remote.Pusher) Option {
	return func(s *Service) {
		s.remote = client
		s.pusher = pusher
	}
}

// WithRaces sets the season race calendar.
func WithRaces(races []model.Race) Option {
	return func(s *Service) {
		s.races = races
	}
}

// WithDrivers sets the default driver grid for pole and podium picks.
func WithDrivers(drivers []string) Option {
	return func(s *Service) {
		s.drivers = drivers
	}
}

// WithStatsTopLimit caps each statistics leaderboard.
func WithStatsTopLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.statsTopLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		statsTopLimit: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the working snapshot. The shared remote copy wins when
// reachable; otherwise the local cache is used, and an empty pool when
// neither exists. With remote sync enabled the push loop is started too.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	st, source, err := s.loadInitial(ctx)
	if err != nil {
		return err
	}
	s.state = st
	s.logger.Info(ctx, "pool snapshot loaded",
		logger.String("source", source),
		logger.Int("participants", len(st.Participants)),
	)

	if s.pusher != nil {
		go s.pusher.Run(ctx)
	}

	s.started = true
	s.updateGauges(st)
	return nil
}

func (s *Service) loadInitial(ctx context.Context) (model.State, string, error) {
	if s.remote != nil {
		st, ok, err := s.remote.Fetch(ctx)
		if err == nil {
			if ok {
				return st, "remote", nil
			}
		} else {
			s.logger.Warn(ctx, "remote snapshot unavailable, falling back to cache", logger.Error(err))
		}
	}
	if s.store != nil {
		st, err := s.store.Load(ctx)
		if err == nil {
			return st, "cache", nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return model.State{}, "", err
		}
	}
	return model.State{}, "empty", nil
}

// Stop flushes any pending remote push and stops the push loop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.pusher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.pusher.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "pusher shutdown timed out", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(context.Background(), "pool service stopped")
}

// snapshot returns a deep copy of the current state.
func (s *Service) snapshot() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// mutate swaps in the state produced by apply and persists it
// best-effort: a failed local save is logged, not surfaced, because the
// in-memory snapshot is already the source of truth for this process.
func (s *Service) mutate(ctx context.Context, apply func(model.State) model.State) {
	s.mu.Lock()
	next := apply(s.state)
	s.state = next
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(ctx, next); err != nil {
			s.logger.Error(ctx, "snapshot save failed", logger.Error(err))
		}
	}
	if s.pusher != nil {
		s.pusher.Offer(next)
	}
	s.updateGauges(next)
}

func (s *Service) updateGauges(st model.State) {
	metrics.UpdateParticipants(len(st.Participants))
	n := len(st.Results)
	if st.Futbol != nil {
		n += len(st.Futbol.Results)
	}
	metrics.UpdateEventsWithResults(n)
}

// raceByKey finds a calendar entry. An empty calendar accepts any key so
// a bare deployment still works.
func (s *Service) raceByKey(key string) (model.Race, bool) {
	for _, r := range s.races {
		if r.Key == key {
			return r, true
		}
	}
	return model.Race{}, len(s.races) == 0
}
