package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
type Metrics struct {
	// Registered documents by document type.
	DocumentsRegistered *prometheus.CounterVec

	// Verification outcomes, labeled matched/mismatched.
	Verifications *prometheus.CounterVec

	// Registration latency including store writes and event emission.
	RegisterLatency prometheus.Histogram
}

// New creates a Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsRegistered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docledger_registry_documents_registered_total",
			Help: "Total documents registered by document type",
		}, []string{"document_type"}),

		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docledger_registry_verifications_total",
			Help: "Total verification attempts by outcome",
		}, []string{"outcome"}), // outcome: "matched", "mismatched"

		RegisterLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docledger_registry_register_duration_seconds",
			Help:    "Duration of document registration",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementRegistered records a successful registration.
func (m *Metrics) IncrementRegistered(documentType string) {
	if m != nil {
		m.DocumentsRegistered.WithLabelValues(documentType).Inc()
	}
}

// IncrementVerification records a verification outcome.
func (m *Metrics) IncrementVerification(matched bool) {
	if m != nil {
		outcome := "mismatched"
		if matched {
			outcome = "matched"
		}
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}

// ObserveRegisterLatency records the registration duration.
func (m *Metrics) ObserveRegisterLatency(d time.Duration) {
	if m != nil {
		m.RegisterLatency.Observe(d.Seconds())
	}
}
