package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search backend and relay Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esrelay",
			Name:      "backend_requests_total",
			Help:      "Total number of calls to the search backend",
		},
		[]string{"operation", "status"}, // status: ok / transport_error / backend_error
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "esrelay",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	RelayOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esrelay",
			Name:      "relay_operations_total",
			Help:      "Relay operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

var registerBackendOnce sync.Once

// RegisterBackendMetrics registers the backend and relay metrics. Must be called from main.
func RegisterBackendMetrics() {
	registerBackendOnce.Do(func() {
		prometheus.MustRegister(BackendRequestsTotal)
		prometheus.MustRegister(BackendRequestDuration)
		prometheus.MustRegister(RelayOperationsTotal)
	})
}
