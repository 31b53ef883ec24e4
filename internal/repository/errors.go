// Package repository implements the persistence layer on top of MySQL.
// The sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting SQL errors; a single boundary translates
// them into HTTP status codes and the response envelope.
package repository

import "errors"

// Not-found sentinels.  Returned when the referenced row is absent or
// soft-deleted; callers cannot tell the two cases apart.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Conflict sentinels.
var (
	// ErrEmailExists is returned when another non-deleted user already
	// holds the requested email address.
	ErrEmailExists = errors.New("email already in use")
	// ErrQuotaFull is returned by the admission check when a session has
	// reached its reservation quota.
	ErrQuotaFull = errors.New("session quota is full")
	// ErrAlreadyReserved is returned when the user already holds a
	// non-deleted reservation for the session.
	ErrAlreadyReserved = errors.New("session already reserved by this user")
)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match.  The two cases are deliberately collapsed.
var ErrInvalidCredentials = errors.New("invalid email or password")
