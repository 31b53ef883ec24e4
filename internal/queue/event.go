// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// ReservationConfirmedEvent is published when a reservation is admitted
// and committed. It carries enough context for downstream consumers to
// log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID   uint64  `json:"reservation_id"`
	UserID          uint64  `json:"user_id"`
	UserEmail       string  `json:"user_email"`
	SessionID       uint64  `json:"session_id"`
	BranchName      string  `json:"branch_name"`
	SportName       string  `json:"sport_name"`
	StartsAt        string  `json:"starts_at"`
	DurationMinutes uint32  `json:"duration_minutes"`
	Price           float64 `json:"price"`
	ConfirmedAt     string  `json:"confirmed_at"`
}

// ReservationQueueName is the durable queue both the publisher and the
// consumer declare.
const ReservationQueueName = "reservation.confirmed"
