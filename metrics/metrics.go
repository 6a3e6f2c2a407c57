// Package metrics holds the Prometheus collectors of the Scryfall client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scryfall"

// Request outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeAPI       = "api_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeEncode    = "encode_error"
	OutcomeCanceled  = "canceled"
)

// Metrics holds the client collectors.
type Metrics struct {
	// RequestsTotal counts dispatched requests by outcome.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration measures the HTTP round trip, throttle excluded.
	RequestDuration *prometheus.HistogramVec
	// ThrottleWait measures how long requests waited for their slot.
	ThrottleWait prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of Scryfall API requests",
		}, []string{"outcome"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Scryfall API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),

		ThrottleWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for the rate limiter in seconds",
			Buckets:   []float64{0, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}

	if reg == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{m.RequestsTotal, m.RequestDuration, m.ThrottleWait} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveRequest records one request and its duration.
func (m *Metrics) ObserveRequest(outcome string, d time.Duration) {
	m.RequestsTotal.WithLabelValues(outcome).Inc()
	m.RequestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveThrottle records a throttle wait.
func (m *Metrics) ObserveThrottle(d time.Duration) {
	m.ThrottleWait.Observe(d.Seconds())
}
