package recommend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names kept as constants so dashboards and tests agree on them.
const (
	MetricRequestsTotal  = "recommendation_requests_total"
	MetricLatencySeconds = "recommendation_latency_seconds"
)

// Metrics tracks recommendation request volume and latency.
type Metrics struct {
	requests prometheus.Counter
	latency  prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Total number of recommendation requests",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricLatencySeconds,
			Help:    "Time spent processing recommendation requests",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Register registers the collectors with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if err := reg.Register(m.requests); err != nil {
		return err
	}
	return reg.Register(m.latency)
}

func (m *Metrics) observe(start time.Time) {
	m.requests.Inc()
	m.latency.Observe(time.Since(start).Seconds())
}
