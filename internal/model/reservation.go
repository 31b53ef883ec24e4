package model

// Reservation is a pure booking fact linking a user to a session.  A
// given (UserID, SessionID) pair may hold at most one non-deleted
// reservation, and the number of non-deleted reservations per session
// never exceeds the session's quota.
type Reservation struct {
	Base
	UserID    uint64
	SessionID uint64
}
