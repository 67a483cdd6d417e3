package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Operation metrics
	OperationsRecorded *prometheus.CounterVec
	OperationAmount    *prometheus.HistogramVec
	OperationsRejected *prometheus.CounterVec

	// Statement metrics
	StatementsGenerated *prometheus.CounterVec
	StatementLines      *prometheus.HistogramVec
	StatementCache      *prometheus.CounterVec

	// Reconciliation metrics
	Discrepancies prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		OperationsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_operations_recorded_total",
				Help: "Total number of recorded operations by type",
			},
			[]string{"type"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_operation_amount",
				Help:    "Recorded operation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		OperationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_operations_rejected_total",
				Help: "Total number of rejected operations by reason",
			},
			[]string{"reason"},
		),

		StatementsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_statements_generated_total",
				Help: "Total number of generated statements by variant",
			},
			[]string{"variant"},
		),
		StatementLines: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_statement_lines",
				Help:    "Number of lines per generated statement",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
			},
			[]string{"variant"},
		),
		StatementCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_statement_cache_lookups_total",
				Help: "Statement cache lookups by result",
			},
			[]string{"result"},
		),

		Discrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bank_reconciliation_discrepancies",
			Help: "Accounts whose operations and history diverged at the last reconciliation",
		}),
	}
}

// OperationRecorded counts a recorded operation.
func (m *Metrics) OperationRecorded(opType domain.OperationType, amount decimal.Decimal) {
	m.OperationsRecorded.WithLabelValues(opType.String()).Inc()
	m.OperationAmount.WithLabelValues(opType.String()).Observe(amount.InexactFloat64())
}

// OperationRejected counts a rejected operation.
func (m *Metrics) OperationRejected(reason string) {
	m.OperationsRejected.WithLabelValues(reason).Inc()
}

// StatementGenerated counts a generated statement.
func (m *Metrics) StatementGenerated(variant string, lines int) {
	m.StatementsGenerated.WithLabelValues(variant).Inc()
	m.StatementLines.WithLabelValues(variant).Observe(float64(lines))
}

// StatementCacheLookup counts a cache hit or miss.
func (m *Metrics) StatementCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.StatementCache.WithLabelValues(result).Inc()
}

// ReconciliationDiscrepancies records the outcome of the last reconciliation.
func (m *Metrics) ReconciliationDiscrepancies(count int) {
	m.Discrepancies.Set(float64(count))
}
