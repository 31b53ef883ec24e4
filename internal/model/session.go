package model

import "time"

// Session is a time-boxed slot at a branch for a particular sport.
// Quota bounds how many non-deleted reservations the session may carry
// at any time; the reservation repository enforces that ceiling inside
// a transaction holding a row lock on the session.
//
// Fields:
//  BranchID        - owning branch.
//  SportID         - sport played during the session.
//  StartTime       - UTC start of the slot.
//  DurationMinutes - slot length, 1..1440.
//  Quota           - positive reservation capacity.
//  Price           - non-negative price per reservation.
type Session struct {
	Base
	BranchID        uint64
	SportID         uint64
	StartTime       time.Time
	DurationMinutes uint32
	Quota           uint32
	Price           float64
}
