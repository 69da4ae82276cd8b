// Package telemetry instruments the agent itself: scrape counts and
// durations, kept on a private Prometheus registry so the agent's own
// metrics never mix with the collected host/zone output.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for scrapes_total.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the agent's self-instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	scrapes        *prometheus.CounterVec
	scrapeDuration *prometheus.HistogramVec
}

// New returns a Metrics with its collectors registered on a fresh
// private registry, including the standard Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonemon",
			Name:      "scrapes_total",
			Help:      "Metric scrapes served, by target kind and outcome.",
		}, []string{"target_kind", "outcome"}),
		scrapeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zonemon",
			Name:      "scrape_duration_seconds",
			Help:      "Time spent collecting and rendering one scrape.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"target_kind"}),
	}

	reg.MustRegister(
		m.scrapes,
		m.scrapeDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveScrape records one served scrape.
func (m *Metrics) ObserveScrape(targetKind, outcome string, elapsed time.Duration) {
	m.scrapes.WithLabelValues(targetKind, outcome).Inc()
	m.scrapeDuration.WithLabelValues(targetKind).Observe(elapsed.Seconds())
}

// Handler exposes the private registry in the standard exposition
// format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
