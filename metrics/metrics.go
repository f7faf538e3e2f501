package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes
const (
	OutcomeOK             = "ok"
	OutcomeForbidden      = "forbidden"
	OutcomeNotFound       = "not_found"
	OutcomeServiceError   = "service_error"
	OutcomeAPIError       = "api_error"
	OutcomeTransportError = "transport_error"
)

// Metrics provides observability for hyperlocal API requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a Metrics instance registered with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "outsidein_requests_total",
			Help: "Total number of API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "outsidein_request_duration_seconds",
			Help:    "Duration of API round trips",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
	}
}

// ObserveRequest records one finished request.
// Call with time.Now() taken before the request was issued.
func (m *Metrics) ObserveRequest(endpoint, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
