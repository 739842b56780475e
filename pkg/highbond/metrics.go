package highbond

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "highbond_client",
			Name:      "requests_total",
			Help:      "HighBond API requests by method, resource and status (\"error\" for transport failures).",
		},
		[]string{"method", "resource", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "highbond_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of HighBond API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)
)
