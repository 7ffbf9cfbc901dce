package model

import "time"

// DateLayout is the canonical wire and storage format for calendar
// dates.  The whole service operates at whole-day granularity, so dates
// travel as plain "YYYY-MM-DD" strings and are only converted to
// time.Time for arithmetic.  All conversions use UTC.
const DateLayout = "2006-01-02"

// Availability states for a hall on a single calendar date.  These are
// the only three values the conflict logic ever inspects; ceremony
// categories and free-text reasons ride along for display.
const (
	StateAvailable = "AVAILABLE"
	StateHeld      = "HELD"
	StateBooked    = "BOOKED"
)

// DateStatus describes the availability of one hall on one date as
// seen by readers.  Reason carries the office's display text (e.g.
// "Wedding – Iyer family") and is meaningless to the state machine.
type DateStatus struct {
	State    string   `json:"state"`
	Category Category `json:"category,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Available is the open-world default: a (hall, date) pair with no
// stored record is available.
func Available() DateStatus { return DateStatus{State: StateAvailable} }

// IsAvailable reports whether the status permits a new hold or booking.
func (s DateStatus) IsAvailable() bool { return s.State == "" || s.State == StateAvailable }

// AvailabilityRecord mirrors one hall_dates row: the durable status of
// a single hall on a single date.  At most one record exists per
// (HallID, Date) pair.  Rows are never deleted – releasing a hold or
// cancelling a booking rewrites State back to AVAILABLE in place so the
// row's timestamps retain a trace of past activity.
//
// HoldToken and HoldExpiresAt are only meaningful while State is HELD.
// The token is an opaque secret returned to the holder; presenting it
// again is what entitles a caller to confirm or release the hold.
type AvailabilityRecord struct {
	HallID        uint64     // hall_dates.hall_id
	Date          string     // hall_dates.date, formatted per DateLayout
	Status        DateStatus // state + category + reason columns
	HoldToken     string     // hall_dates.hold_token (empty unless HELD)
	HoldExpiresAt *time.Time // hall_dates.hold_expires_at (nil unless HELD)
	CreatedAt     time.Time  // hall_dates.created_at
	UpdatedAt     time.Time  // hall_dates.updated_at
}
