// Package metrics exposes Prometheus counters for the reservation
// admission path.  Counters are registered on the default registry and
// served by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationsAdmitted counts reservations that passed admission and
	// were committed.
	ReservationsAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_admitted_total",
		Help: "Reservations admitted and committed.",
	})

	// ReservationsRejected counts admission failures by reason
	// (quota_full, duplicate, not_found).
	ReservationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservations_rejected_total",
		Help: "Reservation admissions rejected, by reason.",
	}, []string{"reason"})
)
