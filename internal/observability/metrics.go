package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikekeda/athletes/internal/platform/resilience"
)

const metricsNamespace = "athletes"

// Metrics holds the pipeline collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	crawlOutcomes      *prometheus.CounterVec
	pageFetches        *prometheus.CounterVec
	geocodeLookups     *prometheus.CounterVec
	socialLookups      *prometheus.CounterVec
	jobDuration        *prometheus.HistogramVec
	breakerTransitions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		crawlOutcomes: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "crawl",
			Name:      "outcomes_total",
			Help:      "Roster links and pages processed, by entity kind, outcome and skip reason.",
		}, []string{"kind", "outcome", "reason"}),
		pageFetches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "wiki",
			Name:      "page_fetches_total",
			Help:      "Wiki page fetches by final status class.",
		}, []string{"status_class"}),
		geocodeLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "geocode",
			Name:      "lookups_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		socialLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "social",
			Name:      "lookups_total",
			Help:      "Social profile lookups by network and outcome.",
		}, []string{"network", "outcome"}),
		jobDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Internal job handler duration.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"job", "status"}),
		breakerTransitions: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "resilience",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions.",
		}, []string{"breaker", "to"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCrawlOutcome(kind, outcome, reason string) {
	if m == nil {
		return
	}
	m.crawlOutcomes.WithLabelValues(kind, outcome, reason).Inc()
}

func (m *Metrics) ObservePageFetch(statusCode int) {
	if m == nil {
		return
	}
	m.pageFetches.WithLabelValues(statusClass(statusCode)).Inc()
}

func (m *Metrics) ObserveGeocode(outcome string) {
	if m == nil {
		return
	}
	m.geocodeLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSocialLookup(network, outcome string) {
	if m == nil {
		return
	}
	m.socialLookups.WithLabelValues(network, outcome).Inc()
}

func (m *Metrics) ObserveJob(job, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.jobDuration.WithLabelValues(job, status).Observe(elapsed.Seconds())
}

// BreakerTransition matches resilience.TransitionFunc.
func (m *Metrics) BreakerTransition(name string, _, to resilience.CircuitState) {
	if m == nil {
		return
	}
	m.breakerTransitions.WithLabelValues(name, string(to)).Inc()
}

func statusClass(statusCode int) string {
	if statusCode <= 0 {
		return "error"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
