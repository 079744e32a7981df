// Package metrics provides Prometheus metrics for the porra pool service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pool activity
	betsSubmitted    prometheus.Counter
	betsAudited      prometheus.Counter
	resultsPublished prometheus.Counter

	// Persistence
	stateLoads     prometheus.Counter
	stateSaves     prometheus.Counter
	syncPushes     prometheus.Counter
	syncPushErrors prometheus.Counter
	syncQueueDepth prometheus.Gauge
	snapshotBytes  prometheus.Gauge

	// Pool scale
	participants      prometheus.Gauge
	eventsWithResults prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "porra",
		subsystem:        "pool",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.betsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bets_submitted_total",
		Help:      "Total number of prediction submissions accepted",
	})

	m.betsAudited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bet_history_entries_total",
		Help:      "Total number of audit history entries appended",
	})

	m.resultsPublished = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_published_total",
		Help:      "Total number of official result writes",
	})

	m.stateLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "state_loads_total",
		Help:      "Total number of state snapshot loads",
	})

	m.stateSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "state_saves_total",
		Help:      "Total number of state snapshot saves to the local cache",
	})

	m.syncPushes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_pushes_total",
		Help:      "Total number of snapshots pushed to the remote endpoint",
	})

	m.syncPushErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_push_errors_total",
		Help:      "Total number of failed remote pushes",
	})

	m.syncQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_queue_depth",
		Help:      "Snapshots waiting to be pushed to the remote endpoint",
	})

	m.snapshotBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_bytes",
		Help:      "Size in bytes of the last serialized state snapshot",
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants",
		Help:      "Number of participants in the pool",
	})

	m.eventsWithResults = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_with_results",
		Help:      "Number of events with an official result, across both games",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the registry metrics are registered on, for serving
// via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordBetSubmitted() {
	if globalManager.enabled {
		globalManager.betsSubmitted.Inc()
	}
}

func RecordHistoryEntry() {
	if globalManager.enabled {
		globalManager.betsAudited.Inc()
	}
}

func RecordResultPublished() {
	if globalManager.enabled {
		globalManager.resultsPublished.Inc()
	}
}

func RecordStateLoad() {
	if globalManager.enabled {
		globalManager.stateLoads.Inc()
	}
}

func RecordStateSave() {
	if globalManager.enabled {
		globalManager.stateSaves.Inc()
	}
}

func RecordSyncPush() {
	if globalManager.enabled {
		globalManager.syncPushes.Inc()
	}
}

func RecordSyncPushError() {
	if globalManager.enabled {
		globalManager.syncPushErrors.Inc()
	}
}

func UpdateSyncQueueDepth(n int) {
	if globalManager.enabled {
		globalManager.syncQueueDepth.Set(float64(n))
	}
}

func UpdateSnapshotBytes(n int) {
	if globalManager.enabled {
		globalManager.snapshotBytes.Set(float64(n))
	}
}

func UpdateParticipants(n int) {
	if globalManager.enabled {
		globalManager.participants.Set(float64(n))
	}
}

func UpdateEventsWithResults(n int) {
	if globalManager.enabled {
		globalManager.eventsWithResults.Set(float64(n))
	}
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}
