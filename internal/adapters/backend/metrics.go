package backend

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/intelicop/console/internal/core/domain"
)

// Metrics counts backend calls by endpoint and outcome.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intelicop",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "intelicop",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(endpoint string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome(err)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrServerFault):
		return "server_error"
	case errors.Is(err, domain.ErrRejected):
		return "rejected"
	}
	return "unavailable"
}
