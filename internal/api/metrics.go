package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_client_requests_total",
			Help: "Total number of gateway requests",
		},
		[]string{"operation", "method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_client_request_duration_seconds",
			Help:    "Duration of gateway requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "method"},
	)
)

func recordRequest(operation, method, status string) {
	requestsTotal.WithLabelValues(operation, method, status).Inc()
}

func observeDuration(operation, method string, elapsed time.Duration) {
	requestDuration.WithLabelValues(operation, method).Observe(elapsed.Seconds())
}
