// Package metrics holds the Prometheus collectors for the conversation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's custom Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	Turns            prometheus.Counter
	CrisisDetections *prometheus.CounterVec
	BackendFallbacks *prometheus.CounterVec
	BackendLatency   prometheus.Histogram
	OversightAlerts  *prometheus.CounterVec
}

// New registers the engine metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Turns: factory.NewCounter(prometheus.CounterOpts{
			Name: "maitri_turns_total",
			Help: "Total number of messages processed",
		}),

		// One increment per indicator, so a single turn can count several times.
		CrisisDetections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maitri_crisis_detections_total",
			Help: "Crisis indicators raised, by indicator",
		}, []string{"indicator"}),

		BackendFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maitri_backend_fallbacks_total",
			Help: "Canned fallback replies served, by backend error kind",
		}, []string{"kind"}),

		BackendLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "maitri_backend_latency_seconds",
			Help:    "Generative backend latency in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30},
		}),

		OversightAlerts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maitri_oversight_alerts_total",
			Help: "Crisis reports published to ground control, by urgency",
		}, []string{"urgency"}),
	}
}

// RecordTurn records a processed message.
func (m *Metrics) RecordTurn() {
	if m == nil {
		return
	}
	m.Turns.Inc()
}

// RecordCrisis records each raised indicator.
func (m *Metrics) RecordCrisis(indicators []string) {
	if m == nil {
		return
	}
	for _, indicator := range indicators {
		m.CrisisDetections.WithLabelValues(indicator).Inc()
	}
}

// RecordFallback records a fallback reply for the given error kind.
func (m *Metrics) RecordFallback(kind string) {
	if m == nil {
		return
	}
	m.BackendFallbacks.WithLabelValues(kind).Inc()
}

// RecordBackendLatency records backend latency.
func (m *Metrics) RecordBackendLatency(seconds float64) {
	if m == nil {
		return
	}
	m.BackendLatency.Observe(seconds)
}

// RecordOversightAlert records a published report.
func (m *Metrics) RecordOversightAlert(urgency string) {
	if m == nil {
		return
	}
	m.OversightAlerts.WithLabelValues(urgency).Inc()
}
