package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interactsh/internal/domain"
)

const namespace = "interactsh"

// Collector counts registrations, polls and received interactions.
type Collector struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	polls         *prometheus.CounterVec
	pollEntries   prometheus.Histogram
	interactions  *prometheus.CounterVec
}

var _ domain.Metrics = (*Collector)(nil)

// New returns a collector registered on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "registrations_total",
				Help:      "Register and deregister calls by outcome.",
			},
			[]string{"op", "result"},
		),
		polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "polls_total",
				Help:      "Poll calls by outcome.",
			},
			[]string{"result"},
		),
		pollEntries: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "poll_entries",
				Help:      "Interactions returned per successful poll.",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "interactions_total",
				Help:      "Decrypted interactions by protocol (raw when unparsed).",
			},
			[]string{"protocol"},
		),
	}
	c.registry.MustRegister(c.registrations, c.polls, c.pollEntries, c.interactions)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRegistration implements domain.Metrics.
func (c *Collector) ObserveRegistration(op string, err error) {
	c.registrations.WithLabelValues(op, result(err)).Inc()
}

// ObservePoll implements domain.Metrics.
func (c *Collector) ObservePoll(entries int, err error) {
	switch {
	case err != nil:
		c.polls.WithLabelValues("error").Inc()
	case entries == 0:
		c.polls.WithLabelValues("empty").Inc()
	default:
		c.polls.WithLabelValues("ok").Inc()
	}
	if err == nil {
		c.pollEntries.Observe(float64(entries))
	}
}

// ObserveEntry implements domain.Metrics.
func (c *Collector) ObserveEntry(protocol string) {
	c.interactions.WithLabelValues(protocol).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
