package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_bookings_created_total",
		Help: "Appointment groups created.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_booking_conflicts_total",
		Help: "Bookings rejected because the slot was taken at insert time.",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_status_transitions_total",
		Help: "Appointment group status transitions by target status.",
	}, []string{"to"})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_notifications_enqueued_total",
		Help: "Booking notifications handed to the async notifier.",
	})
)
