package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TripsRequested = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridehail", Name: "trips_requested_total", Help: "Total trip requests created"})
	TripsCompleted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridehail", Name: "trips_completed_total", Help: "Total trips completed and paid out"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ridehail", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ridehail",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
