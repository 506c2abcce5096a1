package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "sales"
	subsystem = "diagnostic"
)

// Metrics holds the Prometheus collectors for the service. Each instance owns its
// registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	diagnoses           prometheus.Counter
	maturityScore       prometheus.Histogram
	recommendations     *prometheus.CounterVec
	narratives          *prometheus.CounterVec
	narrativeDuration   prometheus.Histogram
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Metrics{
		registry: reg,
		diagnoses: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "diagnoses_total",
			Help:      "Total number of diagnoses computed",
		}),
		maturityScore: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "maturity_score",
			Help:      "Distribution of total maturity scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		recommendations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "recommendations_total",
			Help:      "Triggered recommendations by rule",
		}, []string{"rule"}),
		narratives: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "narratives_total",
			Help:      "Narrative generations by producing source; failed when every tier failed",
		}, []string{"source"}),
		narrativeDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "narrative_duration_seconds",
			Help:      "Time spent producing a narrative",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordDiagnosis counts one diagnosis with its score and triggered rules.
func (m *Metrics) RecordDiagnosis(total int, ruleIDs []string) {
	if m == nil {
		return
	}
	m.diagnoses.Inc()
	m.maturityScore.Observe(float64(total))
	for _, id := range ruleIDs {
		m.recommendations.WithLabelValues(id).Inc()
	}
}

// InitRules exports a zero series for every rule id so rules that never fire
// still show up in the exposition.
func (m *Metrics) InitRules(ruleIDs ...string) {
	if m == nil {
		return
	}
	for _, id := range ruleIDs {
		m.recommendations.WithLabelValues(id)
	}
}

// RecordNarrative counts a narrative by source. An empty source records a failure.
func (m *Metrics) RecordNarrative(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if source == "" {
		source = "failed"
	}
	m.narratives.WithLabelValues(source).Inc()
	m.narrativeDuration.Observe(elapsed.Seconds())
}

// RecordHTTP records one served request.
func (m *Metrics) RecordHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
