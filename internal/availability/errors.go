// Package availability contains the booking core: the in-memory
// availability index, the conflict resolver that serialises state
// transitions per (hall, date) key, and the booking session that
// validates a user's date selection before any transition is attempted.
package availability

import "errors"

// Sentinel errors for the booking flow.  Handlers translate these into
// HTTP statuses; nothing in this package touches the transport layer.

// ErrConflict signals that a requested transition is not legal from
// the date's current state – the date is held by someone else, already
// booked, or the presented hold token does not match.  Translates to
// HTTP 409.
var ErrConflict = errors.New("availability: conflicting state for hall and date")

// ErrNotBooked is returned by Cancel when the target date carries no
// booking.  It is deliberately distinct from a silent success so
// callers can tell "was never booked" from "already released".
var ErrNotBooked = errors.New("availability: date is not booked")

// ErrOutOfWindow is returned by a session when the chosen date lies
// outside the surface's booking window.  No transition is attempted.
var ErrOutOfWindow = errors.New("availability: date outside booking window")

// ErrStaleConflict is returned when the local index considered a date
// available but the resolver lost the race against a concurrent writer.
// The session has already forced an index refresh when this surfaces;
// the caller should prompt for a retry.
var ErrStaleConflict = errors.New("availability: date was taken concurrently")

// ErrRepositoryUnavailable wraps transport or backend failures from the
// store.  No state may be assumed changed; the core builds no retry
// loop around it.
var ErrRepositoryUnavailable = errors.New("availability: repository unavailable")

// UnavailableError is returned by a session when the index already
// shows the date as held or booked.  It carries the stored display
// reason so surfaces can show who or what occupies the date.
type UnavailableError struct {
	State  string
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return "availability: date is " + e.State
	}
	return "availability: date is " + e.State + " (" + e.Reason + ")"
}
