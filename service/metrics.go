package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeMatched  = "matched"
	outcomeRejected = "rejected"
)

// Metrics counts compile attempts by outcome and tracks compile
// latency.
type Metrics struct {
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates and registers the service metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marathon",
			Subsystem: "placement",
			Name:      "compile_attempts_total",
			Help:      "Placement compile attempts by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marathon",
			Subsystem: "placement",
			Name:      "compile_duration_seconds",
			Help:      "Placement compile latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if err := reg.Register(m.attempts); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveCompile records one compile attempt.
func (m *Metrics) ObserveCompile(elapsed time.Duration, matched bool) {
	outcome := outcomeRejected
	if matched {
		outcome = outcomeMatched
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
