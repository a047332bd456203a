package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance engine. All observe
// methods are safe on a nil receiver so services can run without metrics in
// tests.
type Metrics struct {
	// Validation verdicts by resulting status
	ValidationVerdicts *prometheus.CounterVec

	// Violations raised, by code
	Violations *prometheus.CounterVec

	// Full validation latency, including repository reads
	ValidationDuration prometheus.Histogram

	// Override decisions by outcome
	OverrideDecisions *prometheus.CounterVec

	// Reclassifications processed to completion
	ReclassificationsProcessed prometheus.Counter

	// Customers flagged for re-qualification during impact analysis
	CustomersFlagged prometheus.Counter
}

// New registers and returns the engine metrics.
func New() *Metrics {
	return &Metrics{
		ValidationVerdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridose_validation_verdicts_total",
			Help: "Transaction validation verdicts by status",
		}, []string{"status"}),

		Violations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridose_validation_violations_total",
			Help: "Compliance violations raised during validation, by code",
		}, []string{"code"}),

		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veridose_validation_duration_seconds",
			Help:    "Duration of a full transaction validation pass",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		OverrideDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridose_override_decisions_total",
			Help: "Override workflow decisions by outcome",
		}, []string{"decision"}),

		ReclassificationsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridose_reclassifications_processed_total",
			Help: "Reclassifications applied to the substance catalogue",
		}),

		CustomersFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridose_reclassification_customers_flagged_total",
			Help: "Customers flagged for re-qualification by impact analysis",
		}),
	}
}

func (m *Metrics) ObserveVerdict(status string) {
	if m != nil {
		m.ValidationVerdicts.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) ObserveViolation(code string) {
	if m != nil {
		m.Violations.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) ObserveValidationDuration(d time.Duration) {
	if m != nil {
		m.ValidationDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveOverrideDecision(decision string) {
	if m != nil {
		m.OverrideDecisions.WithLabelValues(decision).Inc()
	}
}

func (m *Metrics) ObserveReclassificationProcessed() {
	if m != nil {
		m.ReclassificationsProcessed.Inc()
	}
}

func (m *Metrics) ObserveCustomersFlagged(n int) {
	if m != nil {
		m.CustomersFlagged.Add(float64(n))
	}
}
