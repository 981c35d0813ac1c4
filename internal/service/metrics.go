package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for upstream calls and the aggregation pipelines.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Upstream call latency by api ("camara", "senado") and outcome
	RemoteLatency *prometheus.HistogramVec

	// Amendment fetches that were degraded to an empty list
	DegradedAmendments prometheus.Counter

	// Aggregated pages by pipeline and outcome
	Pages *prometheus.CounterVec
}

// NewMetrics registers the pipeline metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RemoteLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gabinete_remote_request_duration_seconds",
			Help:    "Duration of upstream API requests by api and outcome",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"api", "outcome"}),

		DegradedAmendments: factory.NewCounter(prometheus.CounterOpts{
			Name: "gabinete_amendment_fetch_degraded_total",
			Help: "Amendment fetches that failed and were replaced by an empty list",
		}),

		Pages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gabinete_pages_total",
			Help: "Aggregated listing pages by pipeline and outcome",
		}, []string{"pipeline", "outcome"}),
	}
}

// ObserveRemoteCall records the duration of one upstream request
func (m *Metrics) ObserveRemoteCall(api, outcome string, d time.Duration) {
	if m != nil {
		m.RemoteLatency.WithLabelValues(api, outcome).Observe(d.Seconds())
	}
}

// IncrementDegradedAmendments records one amendment fetch replaced by an empty list
func (m *Metrics) IncrementDegradedAmendments() {
	if m != nil {
		m.DegradedAmendments.Inc()
	}
}

// IncrementPage records one aggregated page
func (m *Metrics) IncrementPage(pipeline string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Pages.WithLabelValues(pipeline, outcome).Inc()
}
