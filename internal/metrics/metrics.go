package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors exported by the service.
type Metrics struct {
	// Recalculations counts bucket upserts by precision and result (ok, error).
	Recalculations *prometheus.CounterVec

	// ResolutionFailures counts actions whose label could not be resolved.
	ResolutionFailures prometheus.Counter

	// StoreBreakerOpen is 1 while the statistic store circuit breaker is open.
	StoreBreakerOpen prometheus.Gauge

	// QueryDuration observes reporting query latency by route and status.
	QueryDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. A nil reg uses a private registry that is never exported.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		Recalculations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "inspektr_recalculations_total",
			Help: "Total number of statistic bucket recalculations.",
		}, []string{"precision", "result"}),

		ResolutionFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "inspektr_resolution_failures_total",
			Help: "Total number of actions whose label could not be resolved.",
		}),

		StoreBreakerOpen: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "inspektr_store_breaker_open",
			Help: "Current state of the statistic store circuit breaker (0=closed, 1=open).",
		}),

		QueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inspektr_query_duration_seconds",
			Help:    "Histogram of statistic query latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"route", "status"}),
	}
}

// SetBreakerOpen records the breaker state; it matches postgres.BreakerConfig.OnStateChange.
func (m *Metrics) SetBreakerOpen(open bool) {
	if open {
		m.StoreBreakerOpen.Set(1)
		return
	}
	m.StoreBreakerOpen.Set(0)
}
