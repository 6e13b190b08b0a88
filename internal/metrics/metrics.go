package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cursorlog"

// Collector holds every metric the collector exports.
type Collector struct {
	registry *prometheus.Registry

	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	messages       *prometheus.CounterVec
	writeDuration  prometheus.Histogram
	writeErrors    prometheus.Counter
}

// New creates a Collector on a private registry, including Go runtime and process metrics.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Event-channel sessions currently connected.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Event-channel sessions accepted since start.",
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Inbound messages by outcome.",
		}, []string{"outcome"}),
		writeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "write_duration_seconds",
			Help:      "Latency of a single coordinate insert.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Coordinate inserts that failed and were dropped.",
		}),
	}

	c.registry.MustRegister(
		c.sessionsActive,
		c.sessionsTotal,
		c.messages,
		c.writeDuration,
		c.writeErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// SessionOpened records an accepted session.
func (c *Collector) SessionOpened() {
	c.sessionsActive.Inc()
	c.sessionsTotal.Inc()
}

// SessionClosed records a deregistered session.
func (c *Collector) SessionClosed() {
	c.sessionsActive.Dec()
}

// MessageHandled records the outcome of one inbound message. outcome is one of the
// connection package's Outcome values.
func (c *Collector) MessageHandled(outcome string) {
	c.messages.WithLabelValues(outcome).Inc()
}

// ObserveWrite records one insert attempt.
func (c *Collector) ObserveWrite(d time.Duration, err error) {
	c.writeDuration.Observe(d.Seconds())
	if err != nil {
		c.writeErrors.Inc()
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
