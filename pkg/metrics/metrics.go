package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Collectors is safe to use as a nil pointer; every method is a no-op then.
type Collectors struct {
	fetches        *prometheus.CounterVec
	announcements  prometheus.Counter
	deliveryErrors prometheus.Counter
	runs           prometheus.Counter
	activeSessions prometheus.Gauge
}

func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jeffbot",
			Name:      "catalog_fetches_total",
			Help:      "Catalog series lookups by outcome.",
		}, []string{"outcome"}),
		announcements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jeffbot",
			Name:      "announcements_total",
			Help:      "Release announcements delivered to the channel.",
		}),
		deliveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jeffbot",
			Name:      "delivery_errors_total",
			Help:      "Chat messages that could not be delivered.",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jeffbot",
			Name:      "scheduled_runs_total",
			Help:      "Daily release checks executed.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jeffbot",
			Name:      "pagination_sessions_active",
			Help:      "Browsing sessions that have not expired yet.",
		}),
	}
	reg.MustRegister(c.fetches, c.announcements, c.deliveryErrors, c.runs, c.activeSessions)
	return c
}

func (c *Collectors) Fetch(outcome string) {
	if c == nil {
		return
	}
	c.fetches.WithLabelValues(outcome).Inc()
}

func (c *Collectors) Announced() {
	if c == nil {
		return
	}
	c.announcements.Inc()
}

func (c *Collectors) DeliveryFailed() {
	if c == nil {
		return
	}
	c.deliveryErrors.Inc()
}

func (c *Collectors) Run() {
	if c == nil {
		return
	}
	c.runs.Inc()
}

func (c *Collectors) SessionStarted() {
	if c == nil {
		return
	}
	c.activeSessions.Inc()
}

func (c *Collectors) SessionEnded() {
	if c == nil {
		return
	}
	c.activeSessions.Dec()
}
