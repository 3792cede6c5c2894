// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "irontracker"

// Manager groups every collector. A nil *Manager is valid and records nothing,
// which keeps tests and the MCP binary free of registry plumbing.
type Manager struct {
	Registry *prometheus.Registry

	CounterRequests     *prometheus.CounterVec
	CounterRecomputes   *prometheus.CounterVec
	CounterCacheLookups *prometheus.CounterVec

	GaugeSessions   prometheus.Gauge
	GaugeWeeklySets prometheus.Gauge

	HistRequestDuration   *prometheus.HistogramVec
	HistRecomputeDuration prometheus.Histogram
}

// New registers all collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Manager{
		Registry: reg,
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "route", "status"}),
		CounterRecomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "recomputes_total",
			Help:      "Dashboard snapshot recomputes by trigger",
		}, []string{"trigger"}),
		CounterCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_cache_lookups_total",
			Help:      "Analytics response cache lookups by result",
		}, []string{"result"}),
		GaugeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "history_sessions",
			Help:      "Number of sessions in the last computed snapshot",
		}),
		GaugeWeeklySets: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "weekly_sets",
			Help:      "Working sets logged in the current week",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route"}),
		HistRecomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of a full dashboard recompute in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

// ObserveRecompute records one dashboard recompute.
func (m *Manager) ObserveRecompute(trigger string, took time.Duration, sessions, weeklySets int) {
	if m == nil {
		return
	}
	m.CounterRecomputes.WithLabelValues(trigger).Inc()
	m.HistRecomputeDuration.Observe(took.Seconds())
	m.GaugeSessions.Set(float64(sessions))
	m.GaugeWeeklySets.Set(float64(weeklySets))
}

// ObserveRequest records one handled HTTP request.
func (m *Manager) ObserveRequest(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.CounterRequests.WithLabelValues(method, route, statusText(status)).Inc()
	m.HistRequestDuration.WithLabelValues(route).Observe(took.Seconds())
}

// ObserveCacheLookup records a response cache hit or miss.
func (m *Manager) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CounterCacheLookups.WithLabelValues(result).Inc()
}
