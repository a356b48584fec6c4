// Package metrics provides Prometheus metrics for the ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ranking metrics
	rankingsTotal         prometheus.Counter
	rankingErrors         prometheus.Counter
	rankingDuration       prometheus.Histogram
	eventsRanked          prometheus.Counter
	eventsRemoved         prometheus.Counter
	eventsExcluded        prometheus.Counter
	fallbackSubstitutions prometheus.Counter
	sortComparisons       prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankd",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rankingsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_total",
		Help:      "Total number of ranking requests served",
	})

	m.rankingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_errors_total",
		Help:      "Total number of ranking requests that failed",
	})

	m.rankingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_duration_milliseconds",
		Help:      "Histogram of end-to-end ranking duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.eventsRanked = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_ranked_total",
		Help:      "Total number of events scored and ranked",
	})

	m.eventsRemoved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_removed_total",
		Help:      "Total number of events dropped by validity filtering",
	})

	m.eventsExcluded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_excluded_total",
		Help:      "Total number of sentinel-scored events set aside by the sorter",
	})

	m.fallbackSubstitutions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fallback_substitutions_total",
		Help:      "Total number of missing fields replaced by fallback statistics",
	})

	m.sortComparisons = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sort_comparisons",
		Help:      "Histogram of comparison counts per ranking sort",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 10),
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

// RecordRanking increments the served-rankings counter and observes the
// request duration.
func RecordRanking(durationMs float64) {
	globalManager.rankingsTotal.Inc()
	globalManager.rankingDuration.Observe(durationMs)
}

// RecordRankingError increments the failed-rankings counter.
func RecordRankingError() {
	globalManager.rankingErrors.Inc()
}

// RecordEventsRanked adds to the ranked-events counter.
func RecordEventsRanked(n int) {
	globalManager.eventsRanked.Add(float64(n))
}

// RecordEventsRemoved adds to the filtered-events counter.
func RecordEventsRemoved(n int) {
	globalManager.eventsRemoved.Add(float64(n))
}

// RecordEventsExcluded adds to the sentinel-excluded counter.
func RecordEventsExcluded(n int) {
	globalManager.eventsExcluded.Add(float64(n))
}

// RecordFallbackSubstitutions adds to the substitution counter.
func RecordFallbackSubstitutions(n int) {
	globalManager.fallbackSubstitutions.Add(float64(n))
}

// RecordSortComparisons observes the comparison count of one sort.
func RecordSortComparisons(n int64) {
	globalManager.sortComparisons.Observe(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
