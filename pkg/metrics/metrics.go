// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationAdmissions counts admission outcomes: "created", "replayed"
	// or the rejection kind.
	ReservationAdmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "reservation_admissions_total",
		Help:      "Reservation admission attempts by outcome.",
	}, []string{"outcome"})

	ReservationStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "reservation_status_changes_total",
		Help:      "Reservation status transitions by target status.",
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "booking",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern, method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})
)
