package remote

import (
	"context"
	"sync"
	"time"

	"github.com/birreros/porra/internal/domain/model"
	"github.com/birreros/porra/pkg/logger"
	"github.com/birreros/porra/pkg/metrics"
)

const (
	defaultPushInterval = 2 * time.Second
	pushTimeout         = 15 * time.Second
)

// Pusher uploads snapshots asynchronously, coalescing bursts: only the
// most recent snapshot offered since the last upload is pushed, so rapid
// edits cost one request. Last write wins, matching the remote endpoint.
type Pusher struct {
	client   *Client
	interval time.Duration
	logger   logger.Logger

	mu      sync.Mutex
	pending *model.State
	notify  chan struct{}

	shutdown chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewPusher creates a pusher for the given client.
func NewPusher(client *Client, opts ...PusherOption) *Pusher {
	p := &Pusher{
		client:   client,
		interval: defaultPushInterval,
		logger:   logger.Get().Named("pusher"),
		notify:   make(chan struct{}, 1),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Offer queues a snapshot for upload, replacing any snapshot still
// waiting. Never blocks.
func (p *Pusher) Offer(st model.State) {
	p.mu.Lock()
	p.pending = &st
	p.mu.Unlock()
	select {
	case p.notify <- struct{}{}:
	default:
	}
	metrics.UpdateSyncQueueDepth(1)
}

// Run drains offered snapshots until ctx is canceled or Shutdown is
// called, spacing uploads by the configured interval.
func (p *Pusher) Run(ctx context.Context) {
	defer close(p.done)
	p.logger.Info(ctx, "remote pusher started",
		logger.String("interval", p.interval.String()))

	for {
		select {
		case <-ctx.Done():
			p.flush()
			return
		case <-p.shutdown:
			p.flush()
			return
		case <-p.notify:
			p.flush()
			select {
			case <-time.After(p.interval):
			case <-ctx.Done():
				p.flush()
				return
			case <-p.shutdown:
				p.flush()
				return
			}
		}
	}
}

// Shutdown stops the loop after a final flush of any pending snapshot.
func (p *Pusher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// flush uploads the pending snapshot, if any. Failures are logged and
// the snapshot is dropped; the next edit re-offers a fresher one anyway.
func (p *Pusher) flush() {
	p.mu.Lock()
	st := p.pending
	p.pending = nil
	p.mu.Unlock()
	metrics.UpdateSyncQueueDepth(0)
	if st == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if err := p.client.Push(ctx, *st); err != nil {
		metrics.RecordSyncPushError()
		p.logger.Warn(ctx, "snapshot push failed", logger.Error(err))
		return
	}
	metrics.RecordSyncPush()
	p.logger.Debug(ctx, "snapshot pushed")
}
