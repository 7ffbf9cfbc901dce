package availability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kovil/hall-booking/internal/calendar"
	"github.com/kovil/hall-booking/internal/model"
)

// SurfaceMode selects which transition a surface's date selection
// requests: the multi-hall overview places a provisional hold, the
// single-hall detail flow books directly.
type SurfaceMode int

const (
	// ModeHold requests a time-limited hold for later confirmation.
	ModeHold SurfaceMode = iota
	// ModeBook confirms a booking immediately, skipping the hold.
	ModeBook
)

// Surface describes one booking surface: its display name, how many
// months ahead it may offer, and which transition a selection requests.
// The two shipped surfaces differ only in configuration – the window
// policy itself is horizon-agnostic.
type Surface struct {
	Name          string
	HorizonMonths int
	Mode          SurfaceMode
}

// Session orchestrates a single surface's date-selection flow: it
// validates a chosen date against the booking window and the local
// index, then requests the transition through the resolver.  A session
// never writes state itself.
type Session struct {
	surface  Surface
	index    *Index
	resolver *Resolver
	store    Store
	now      func() time.Time
}

// NewSession constructs a Session for one surface.  now may be nil, in
// which case the wall clock is used.
func NewSession(surface Surface, index *Index, resolver *Resolver, store Store, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{surface: surface, index: index, resolver: resolver, store: store, now: now}
}

// Surface returns the surface configuration this session serves.
func (s *Session) Surface() Surface { return s.surface }

// SelectDate runs the full selection flow for one (hall, date) pair.
//
// Rejections, cheapest first:
//   - ErrOutOfWindow when the date is not in the surface's window; no
//     transition is attempted.
//   - *UnavailableError when the local index already shows the date
//     held or booked, carrying the stored reason for display.
//   - ErrStaleConflict when the index considered the date free but the
//     resolver lost the race; the index has been refreshed from the
//     store by the time this returns, so a retry sees current state.
//   - ErrRepositoryUnavailable when the store cannot be reached; no
//     state is assumed changed and no retry is attempted here.
//
// On success the written record is returned and the index is refreshed
// once so subsequent reads in this session observe the new state.
func (s *Session) SelectDate(ctx context.Context, hallID uint64, date string, cat model.Category, reason string) (*model.AvailabilityRecord, error) {
	if !calendar.Contains(s.now(), s.surface.HorizonMonths, date) {
		return nil, ErrOutOfWindow
	}
	if st := s.index.StatusOf(hallID, date); !st.IsAvailable() {
		return nil, &UnavailableError{State: st.State, Reason: st.Reason}
	}

	var (
		rec *model.AvailabilityRecord
		err error
	)
	switch s.surface.Mode {
	case ModeBook:
		rec, err = s.resolver.ConfirmBooking(ctx, hallID, date, cat, reason, "")
	default:
		rec, err = s.resolver.RequestHold(ctx, hallID, date, cat, reason)
	}
	if err != nil {
		if errors.Is(err, ErrConflict) {
			// The index was stale: someone else won the key between our
			// check and the resolver's write.  Refresh before reporting
			// so the caller's retry sees reality.
			s.RefreshIndex(ctx)
			return nil, ErrStaleConflict
		}
		if errors.Is(err, ErrRepositoryUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	s.RefreshIndex(ctx)
	return rec, nil
}

// RefreshIndex rebuilds the index from the store.  Failures are logged
// and swallowed: the index is a cache, and a stale snapshot is handled
// by the resolver's serialization on the next write.
func (s *Session) RefreshIndex(ctx context.Context) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		log.Printf("session %s: index refresh failed: %v", s.surface.Name, err)
		return
	}
	s.index.Refresh(records)
}
