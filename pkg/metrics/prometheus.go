// Package metrics provides Prometheus metrics for the skillfit service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace      string
	latencyBuckets []float64
	registry       prometheus.Registerer

	// Pipeline metrics
	resumesProcessed prometheus.Counter
	pipelineLatency  prometheus.Histogram
	skillsPerResume  prometheus.Histogram
	sourceCandidates *prometheus.CounterVec
	noGoodMatchTotal prometheus.Counter

	// Model adapter metrics
	adapterLatency *prometheus.HistogramVec
	adapterErrors  *prometheus.CounterVec

	// Inference pool metrics
	poolQueueDepth    prometheus.Gauge
	poolQueueCapacity prometheus.Gauge
	poolRejections    prometheus.Counter
	poolWorkers       prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Audit store metrics
	auditWriteErrors prometheus.Counter
}

var (
	globalManager  *Manager              //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "skillfit",
		latencyBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: m.namespace, Name: name, Help: help}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{Namespace: m.namespace, Name: name, Help: help}
	}
	histOpts := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   m.latencyBuckets,
		}
	}

	m.resumesProcessed = prometheus.NewCounter(factory("resumes_processed_total", "Resumes run through the extraction pipeline."))
	m.pipelineLatency = prometheus.NewHistogram(histOpts("pipeline_latency_ms", "End-to-end extraction pipeline latency in milliseconds."))
	m.skillsPerResume = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "skills_per_resume",
		Help:      "Number of reconciled skills per resume.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 40, 80},
	})
	m.sourceCandidates = prometheus.NewCounterVec(factory("source_candidates_total", "Skill candidates proposed, labeled by source."), []string{"source"})
	m.noGoodMatchTotal = prometheus.NewCounter(factory("no_good_match_total", "Responses where no role cleared the match floor."))

	m.adapterLatency = prometheus.NewHistogramVec(histOpts("adapter_latency_ms", "Model adapter call latency in milliseconds."), []string{"adapter"})
	m.adapterErrors = prometheus.NewCounterVec(factory("adapter_errors_total", "Model adapter failures, labeled by adapter."), []string{"adapter"})

	m.poolQueueDepth = prometheus.NewGauge(gaugeOpts("inference_queue_depth", "Jobs waiting in the inference pool queue."))
	m.poolQueueCapacity = prometheus.NewGauge(gaugeOpts("inference_queue_capacity", "Configured inference queue capacity."))
	m.poolRejections = prometheus.NewCounter(factory("inference_rejections_total", "Inference jobs rejected due to backpressure."))
	m.poolWorkers = prometheus.NewGauge(gaugeOpts("inference_workers", "Number of inference pool workers."))

	m.httpRequests = prometheus.NewCounterVec(factory("http_requests_total", "HTTP requests, labeled by endpoint, method and status."), []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(histOpts("http_request_duration_ms", "HTTP request duration in milliseconds."), []string{"endpoint", "method"})

	m.auditWriteErrors = prometheus.NewCounter(factory("audit_write_errors_total", "Failed audit artifact writes."))

	m.registry.MustRegister(
		m.resumesProcessed, m.pipelineLatency, m.skillsPerResume, m.sourceCandidates, m.noGoodMatchTotal,
		m.adapterLatency, m.adapterErrors,
		m.poolQueueDepth, m.poolQueueCapacity, m.poolRejections, m.poolWorkers,
		m.httpRequests, m.httpRequestDuration,
		m.auditWriteErrors,
	)

	return m
}

// GetRegistry returns the gatherer backing the /metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordResumeProcessed()            { globalManager.resumesProcessed.Inc() }
func ObservePipelineLatency(ms float64) { globalManager.pipelineLatency.Observe(ms) }
func ObserveSkillsPerResume(n int)      { globalManager.skillsPerResume.Observe(float64(n)) }
func RecordNoGoodMatch()                { globalManager.noGoodMatchTotal.Inc() }

// RecordSourceCandidates counts candidates proposed by one source.
func RecordSourceCandidates(source string, n int) {
	globalManager.sourceCandidates.WithLabelValues(source).Add(float64(n))
}

func ObserveAdapterLatency(adapter string, ms float64) {
	globalManager.adapterLatency.WithLabelValues(adapter).Observe(ms)
}

func RecordAdapterError(adapter string) {
	globalManager.adapterErrors.WithLabelValues(adapter).Inc()
}

func UpdatePoolQueueDepth(n int)    { globalManager.poolQueueDepth.Set(float64(n)) }
func UpdatePoolQueueCapacity(n int) { globalManager.poolQueueCapacity.Set(float64(n)) }
func RecordPoolRejection()          { globalManager.poolRejections.Inc() }
func UpdatePoolWorkers(n int)       { globalManager.poolWorkers.Set(float64(n)) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func ObserveHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func RecordAuditWriteError() { globalManager.auditWriteErrors.Inc() }
