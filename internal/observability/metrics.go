package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "driverhire", Name: "bookings_created_total", Help: "Total bookings created"})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{Namespace: "driverhire", Name: "bookings_cancelled_total", Help: "Total bookings cancelled"})
	TripsAccepted     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "driverhire", Name: "trips_accepted_total", Help: "Total trips accepted by drivers"})
	TripsCompleted    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "driverhire", Name: "trips_completed_total", Help: "Total trips completed"})
	ReviewsAdded      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "driverhire", Name: "reviews_added_total", Help: "Total driver reviews recorded"})
	DriversAvailable  = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "driverhire", Name: "drivers_available", Help: "Drivers currently flagged available"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "driverhire", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "driverhire",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
