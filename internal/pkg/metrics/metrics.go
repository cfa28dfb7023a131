// Package metrics holds the Prometheus instruments for the registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the registry's Prometheus collectors. A single instance is
// built at bootstrap and injected where needed.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec

	EnrollmentsTotal    *prometheus.CounterVec
	TransitionsTotal    *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	IdentifierRetries   prometheus.Counter
}

// New creates a Metrics instance backed by its own registry (Go runtime and
// process collectors included).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "registrar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		EnrollmentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registrar",
			Name:      "enrollments_total",
			Help:      "Accepted enrollments and role attachments by role type.",
		}, []string{"role_type"}),
		TransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registrar",
			Name:      "status_transitions_total",
			Help:      "Accepted status transitions by from and to state.",
		}, []string{"from", "to"}),
		TransitionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registrar",
			Name:      "status_transitions_rejected_total",
			Help:      "Rejected status transitions by current state.",
		}, []string{"from"}),
		IdentifierRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "registrar",
			Name:      "identifier_generation_retries_total",
			Help:      "Identifier generation attempts retried after a collision.",
		}),
	}

	return m
}
