// Package metrics provides Prometheus metrics for the recommendation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core pipeline metrics
	recommendationsServed *prometheus.CounterVec
	eventsScored          prometheus.Counter
	edgeCaseFallbacks     *prometheus.CounterVec
	candidatesFiltered    *prometheus.CounterVec
	pipelineLatency       *prometheus.HistogramVec

	// Conflict metrics
	conflictsDetected *prometheus.CounterVec
	conflictsResolved *prometheus.CounterVec

	// Provider metrics
	providerLatency *prometheus.HistogramVec
	providerErrors  *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lankaconnect",
		subsystem:        "recommendation",
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recommendationsServed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Total number of recommendations returned, by operation",
	}, []string{"operation"})

	m.eventsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_scored_total",
		Help:      "Total number of candidate events scored",
	})

	m.edgeCaseFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "edge_case_fallbacks_total",
		Help:      "Total number of component scores produced by fallback, by criterion",
	}, []string{"criterion"})

	m.candidatesFiltered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_filtered_total",
		Help:      "Total number of candidates excluded before ranking, by reason",
	}, []string{"reason"})

	m.pipelineLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_latency_milliseconds",
		Help:      "Histogram of end-to-end pipeline latency in milliseconds, by operation",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.conflictsDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conflicts_detected_total",
		Help:      "Total number of conflicts detected, by kind",
	}, []string{"kind"})

	m.conflictsResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conflicts_resolved_total",
		Help:      "Total number of conflicts resolved, by kind and outcome",
	}, []string{"kind", "outcome"})

	m.providerLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "provider_latency_milliseconds",
		Help:      "Histogram of upstream provider lookup latency in milliseconds, by provider",
		Buckets:   m.histogramBuckets,
	}, []string{"provider"})

	m.providerErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "provider_errors_total",
		Help:      "Total number of upstream provider failures degraded to fallback, by provider",
	}, []string{"provider"})
}

// Package-level helpers recording on the global manager.

// RecordRecommendationsServed adds to the served counter for an operation.
func RecordRecommendationsServed(operation string, count int) {
	if globalManager.enabled {
		globalManager.recommendationsServed.WithLabelValues(operation).Add(float64(count))
	}
}

// RecordEventsScored adds to the scored-events counter.
func RecordEventsScored(count int) {
	if globalManager.enabled {
		globalManager.eventsScored.Add(float64(count))
	}
}

// RecordEdgeCaseFallback increments the fallback counter for a criterion.
func RecordEdgeCaseFallback(criterion string) {
	if globalManager.enabled {
		globalManager.edgeCaseFallbacks.WithLabelValues(criterion).Inc()
	}
}

// RecordCandidateFiltered increments the filtered counter for a reason.
func RecordCandidateFiltered(reason string) {
	if globalManager.enabled {
		globalManager.candidatesFiltered.WithLabelValues(reason).Inc()
	}
}

// ObservePipelineLatency records end-to-end latency for an operation.
func ObservePipelineLatency(operation string, ms float64) {
	if globalManager.enabled {
		globalManager.pipelineLatency.WithLabelValues(operation).Observe(ms)
	}
}

// RecordConflictDetected increments the detected counter for a kind.
func RecordConflictDetected(kind string) {
	if globalManager.enabled {
		globalManager.conflictsDetected.WithLabelValues(kind).Inc()
	}
}

// RecordConflictResolved increments the resolved counter.
func RecordConflictResolved(kind, outcome string) {
	if globalManager.enabled {
		globalManager.conflictsResolved.WithLabelValues(kind, outcome).Inc()
	}
}

// ObserveProviderLatency records one provider lookup latency.
func ObserveProviderLatency(provider string, ms float64) {
	if globalManager.enabled {
		globalManager.providerLatency.WithLabelValues(provider).Observe(ms)
	}
}

// RecordProviderError increments the provider failure counter.
func RecordProviderError(provider string) {
	if globalManager.enabled {
		globalManager.providerErrors.WithLabelValues(provider).Inc()
	}
}

// Registry returns the custom registry carrying all engine metrics, for
// exposition by the embedding application.
func Registry() *prometheus.Registry {
	return customRegistry
}
