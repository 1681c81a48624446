// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sleepdash"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// Metrics groups the counters and histograms recorded by the services.
// A nil *Metrics records nothing.
type Metrics struct {
	uploads        *prometheus.CounterVec
	historyFetches *prometheus.CounterVec
	historyRecords prometheus.Histogram
	coachReplies   *prometheus.CounterVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Sleep data uploads by outcome.",
		}, []string{"outcome"}),
		historyFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_fetch_total",
			Help:      "Report history fetches by outcome.",
		}, []string{"outcome"}),
		historyRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "history_records",
			Help:      "Number of records per successful history fetch.",
			Buckets:   []float64{0, 1, 7, 14, 30, 60, 120, 365},
		}),
		coachReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coach_replies_total",
			Help:      "Coach replies by source.",
		}, []string{"source"}),
	}
	reg.MustRegister(m.uploads, m.historyFetches, m.historyRecords, m.coachReplies)
	return m
}

func (m *Metrics) ObserveUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHistoryFetch(outcome string, records int) {
	if m == nil {
		return
	}
	m.historyFetches.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.historyRecords.Observe(float64(records))
	}
}

func (m *Metrics) ObserveCoachReply(source string) {
	if m == nil {
		return
	}
	m.coachReplies.WithLabelValues(source).Inc()
}
