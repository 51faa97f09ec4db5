package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments exposed by the HTTP service.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PairsFormed     prometheus.Counter
	CellsMatched    prometheus.Counter
}

// NewMetrics creates and registers the pairxl metric set on a dedicated
// registry, keeping the default registry untouched for tests.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pairxl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests handled, by route and status.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pairxl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		PairsFormed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pairxl",
			Name:      "pairs_formed_total",
			Help:      "Number of opposite-value pairs formed.",
		}),
		CellsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pairxl",
			Name:      "cells_scanned_total",
			Help:      "Number of cells run through the matcher.",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.PairsFormed,
		m.CellsMatched,
	)

	return m
}

// Handler returns the /metrics endpoint handler for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
