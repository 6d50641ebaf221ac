package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ClearingPrometheusMetrics counts outcomes of the clearing pipeline stages.
type ClearingPrometheusMetrics struct {
	intents      *prometheus.CounterVec
	transfers    *prometheus.CounterVec
	observations *prometheus.CounterVec
	honoring     *prometheus.CounterVec
}

func newClearingPrometheusMetrics(reg prometheus.Registerer) *ClearingPrometheusMetrics {
	mtc := &ClearingPrometheusMetrics{
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearing_intents_total",
				Help: "Number of submitted intents by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearing_transfers_total",
				Help: "Number of engine transfers by ledger and resulting state",
			},
			[]string{"ledger", "state"},
		),
		observations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearing_observations_total",
				Help: "Number of mirrored clearing events by result",
			},
			[]string{"result"},
		),
		honoring: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearing_honoring_total",
				Help: "Number of honoring dispatches by rail and status",
			},
			[]string{"rail", "status"},
		),
	}

	reg.MustRegister(mtc.intents, mtc.transfers, mtc.observations, mtc.honoring)

	return mtc
}

func (m *ClearingPrometheusMetrics) RecordIntent(kind, outcome string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(kind, outcome).Inc()
}

func (m *ClearingPrometheusMetrics) RecordTransfer(ledger, state string) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(ledger, state).Inc()
}

func (m *ClearingPrometheusMetrics) RecordObservation(result string) {
	if m == nil {
		return
	}
	m.observations.WithLabelValues(result).Inc()
}

func (m *ClearingPrometheusMetrics) RecordHonoring(rail, status string) {
	if m == nil {
		return
	}
	m.honoring.WithLabelValues(rail, status).Inc()
}
