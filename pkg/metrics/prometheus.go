// Package metrics provides Prometheus metrics for the sofirank index.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	latencyBuckets   []float64
	registry         prometheus.Registerer

	// Ingestion
	ingestRows     *prometheus.CounterVec
	ingestErrors   *prometheus.CounterVec
	orphanRatings  prometheus.Counter
	ingestDuration prometheus.Histogram

	// Queries
	queries      *prometheus.CounterVec
	queryLatency *prometheus.HistogramVec

	// Catalog shape
	tableRecords     *prometheus.GaugeVec
	tableOccupancy   *prometheus.GaugeVec
	tableChainLength *prometheus.GaugeVec
	indexWords       *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorRateByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// defaultLatencyBuckets spans 50µs to about 13s, in milliseconds.
var defaultLatencyBuckets = prometheus.ExponentialBuckets(0.05, 4, 10)

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sofirank",
		subsystem:        "index",
		latencyBuckets:   defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.ingestRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_rows_total",
		Help:      "Rows ingested per source file",
	}, []string{"file"})

	m.ingestErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_errors_total",
		Help:      "Ingestion passes aborted per source file",
	}, []string{"file"})

	m.orphanRatings = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "orphan_ratings_total",
		Help:      "Rating events that referenced an unknown player",
	})

	m.ingestDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_duration_milliseconds",
		Help:      "Duration of a full ingestion pass in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 10),
	})

	m.queries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_total",
		Help:      "Queries resolved by verb and outcome",
	}, []string{"verb", "outcome"})

	m.queryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_latency_milliseconds",
		Help:      "Query resolution latency in milliseconds",
		Buckets:   m.latencyBuckets,
	}, []string{"verb"})

	m.tableRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_records",
		Help:      "Entries stored per hash table",
	}, []string{"table"})

	m.tableOccupancy = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_occupied_buckets",
		Help:      "Non-empty buckets per hash table",
	}, []string{"table"})

	m.tableChainLength = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_average_chain_length",
		Help:      "Mean chain length over non-empty buckets per hash table",
	}, []string{"table"})

	m.indexWords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "index_words",
		Help:      "Distinct words per prefix index",
	}, []string{"index"})

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
			Buckets:   m.latencyBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordIngestRow counts one ingested row of file.
func RecordIngestRow(file string) {
	globalManager.ingestRows.WithLabelValues(file).Inc()
}

// RecordIngestError counts an aborted ingestion pass over file.
func RecordIngestError(file string) {
	globalManager.ingestErrors.WithLabelValues(file).Inc()
}

// RecordOrphanRating counts a rating for an unknown player.
func RecordOrphanRating() {
	globalManager.orphanRatings.Inc()
}

// RecordIngestDuration records a full ingestion pass in milliseconds.
func RecordIngestDuration(ms float64) {
	globalManager.ingestDuration.Observe(ms)
}

// RecordQuery counts a resolved query.
func RecordQuery(verb, outcome string) {
	globalManager.queries.WithLabelValues(verb, outcome).Inc()
}

// RecordQueryLatency records query latency in milliseconds.
func RecordQueryLatency(verb string, ms float64) {
	globalManager.queryLatency.WithLabelValues(verb).Observe(ms)
}

// UpdateTableStats publishes the shape of a hash table.
func UpdateTableStats(table string, records, occupancy int, avgChain float64) {
	globalManager.tableRecords.WithLabelValues(table).Set(float64(records))
	globalManager.tableOccupancy.WithLabelValues(table).Set(float64(occupancy))
	globalManager.tableChainLength.WithLabelValues(table).Set(avgChain)
}

// UpdateIndexWords publishes the word count of a prefix index.
func UpdateIndexWords(index string, words int) {
	globalManager.indexWords.WithLabelValues(index).Set(float64(words))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry holding all metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
