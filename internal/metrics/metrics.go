package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated The total number of bookings created (counter)
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "travel",
			Name:      "bookings_created_total",
			Help:      "The total number of bookings created",
		},
	)

	// BookingsCancelled The total number of bookings cancelled (counter)
	BookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "travel",
			Name:      "bookings_cancelled_total",
			Help:      "The total number of bookings cancelled",
		},
	)

	// BookingsRejected booking operations refused by the workflow, by reason (counter)
	BookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel",
			Name:      "bookings_rejected_total",
			Help:      "Booking operations refused by the workflow",
		},
		[]string{"operation", "reason"},
	)

	// StoreFlushes whole-store saves by result (counter)
	StoreFlushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel",
			Name:      "store_flushes_total",
			Help:      "Whole-store saves to the persistence boundary",
		},
		[]string{"result"},
	)
)
