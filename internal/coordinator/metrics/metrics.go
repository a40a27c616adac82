package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the coordinator module.
type Metrics struct {
	// Opened generation requests by document type.
	RequestsOpened *prometheus.CounterVec

	// Oracle responses, labeled accepted/rejected.
	ResponsesReceived *prometheus.CounterVec

	// Completed fulfillments.
	RequestsFulfilled prometheus.Counter

	// Time from request creation to fulfillment.
	FulfillmentLatency prometheus.Histogram
}

// New creates a Metrics instance with all coordinator metrics registered.
func New() *Metrics {
	return &Metrics{
		RequestsOpened: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docledger_coordinator_requests_opened_total",
			Help: "Total generation requests opened by document type",
		}, []string{"document_type"}),

		ResponsesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docledger_coordinator_responses_total",
			Help: "Total oracle responses by outcome",
		}, []string{"outcome"}), // outcome: "accepted", "rejected"

		RequestsFulfilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docledger_coordinator_requests_fulfilled_total",
			Help: "Total requests fulfilled into registered documents",
		}),

		FulfillmentLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docledger_coordinator_fulfillment_duration_seconds",
			Help:    "Time between request creation and fulfillment",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600, 14400},
		}),
	}
}

// IncrementOpened records an opened request.
func (m *Metrics) IncrementOpened(documentType string) {
	if m != nil {
		m.RequestsOpened.WithLabelValues(documentType).Inc()
	}
}

// IncrementResponse records an oracle response outcome.
func (m *Metrics) IncrementResponse(accepted bool) {
	if m != nil {
		outcome := "rejected"
		if accepted {
			outcome = "accepted"
		}
		m.ResponsesReceived.WithLabelValues(outcome).Inc()
	}
}

// IncrementFulfilled records a completed fulfillment and its end-to-end
// latency.
func (m *Metrics) IncrementFulfilled(sinceCreation time.Duration) {
	if m != nil {
		m.RequestsFulfilled.Inc()
		m.FulfillmentLatency.Observe(sinceCreation.Seconds())
	}
}
