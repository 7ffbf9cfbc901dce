package availability

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/kovil/hall-booking/internal/model"
)

// Resolver owns every state transition for (hall, date) keys.  It is
// the sole writer-of-record: all mutation of availability passes
// through it, and for a given key the check-then-write sequence runs
// as one atomic unit under a per-key mutex.  Two concurrent attempts to
// book the same hall on the same date therefore cannot both succeed –
// exactly one observes ErrConflict.
//
// Legal transitions:
//
//	AVAILABLE -> HELD     (RequestHold)
//	AVAILABLE -> BOOKED   (ConfirmBooking, skip hold)
//	HELD      -> BOOKED   (ConfirmBooking with the matching hold token)
//	HELD      -> AVAILABLE (Release with the matching token, or expiry)
//	BOOKED    -> AVAILABLE (Cancel)
//
// A held or booked date's category and reason can never be swapped in
// place; the key must pass through AVAILABLE first.
type Resolver struct {
	store   Store
	index   *Index
	holdTTL time.Duration
	now     func() time.Time

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// NewResolver constructs a Resolver.  holdTTL is how long an
// unconfirmed hold survives before the store reports it available
// again; now may be nil, in which case the wall clock is used.
func NewResolver(store Store, index *Index, holdTTL time.Duration, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		store:   store,
		index:   index,
		holdTTL: holdTTL,
		now:     now,
		keys:    make(map[string]*sync.Mutex),
	}
}

// lockKey acquires the mutex for one (hall, date) key and returns its
// unlock function.  The map holds one small entry per key ever touched;
// at whole-day granularity this stays bounded by halls x window length.
func (r *Resolver) lockKey(hallID uint64, date string) func() {
	key := fmt.Sprintf("%d:%s", hallID, date)
	r.mu.Lock()
	km, ok := r.keys[key]
	if !ok {
		km = &sync.Mutex{}
		r.keys[key] = km
	}
	r.mu.Unlock()
	km.Lock()
	return km.Unlock
}

// RequestHold places a provisional, time-limited hold on the date.  It
// succeeds only when the current state is AVAILABLE (an expired hold
// counts as available) and returns the written record, whose HoldToken
// the caller must retain to confirm or release.  Any other state yields
// ErrConflict.
func (r *Resolver) RequestHold(ctx context.Context, hallID uint64, date string, cat model.Category, reason string) (*model.AvailabilityRecord, error) {
	unlock := r.lockKey(hallID, date)
	defer unlock()

	cur, err := r.store.GetRecord(ctx, hallID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	if cur != nil && !cur.Status.IsAvailable() {
		return nil, ErrConflict
	}
	token, err := randomToken(32)
	if err != nil {
		return nil, err
	}
	expires := r.now().UTC().Add(r.holdTTL)
	rec := model.AvailabilityRecord{
		HallID:        hallID,
		Date:          date,
		Status:        model.DateStatus{State: model.StateHeld, Category: cat, Reason: reason},
		HoldToken:     token,
		HoldExpiresAt: &expires,
	}
	if err := r.store.PutRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	r.index.Set(hallID, date, rec.Status)
	return &rec, nil
}

// ConfirmBooking finalises a booking on the date.  It succeeds from
// AVAILABLE (skipping the hold step) or from HELD when holdToken
// matches the stored token.  A date booked by anyone, or held under a
// different token, yields ErrConflict.
func (r *Resolver) ConfirmBooking(ctx context.Context, hallID uint64, date string, cat model.Category, reason, holdToken string) (*model.AvailabilityRecord, error) {
	unlock := r.lockKey(hallID, date)
	defer unlock()

	cur, err := r.store.GetRecord(ctx, hallID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	if cur != nil {
		switch cur.Status.State {
		case model.StateBooked:
			return nil, ErrConflict
		case model.StateHeld:
			if holdToken == "" || holdToken != cur.HoldToken {
				return nil, ErrConflict
			}
		}
	}
	rec := model.AvailabilityRecord{
		HallID: hallID,
		Date:   date,
		Status: model.DateStatus{State: model.StateBooked, Category: cat, Reason: reason},
	}
	if err := r.store.PutRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	r.index.Set(hallID, date, rec.Status)
	return &rec, nil
}

// Release returns a held date to AVAILABLE.  Releasing an already
// available date succeeds as a no-op, so abandoning clients can retry
// safely.  A booked date, or a hold under a different token, yields
// ErrConflict.
func (r *Resolver) Release(ctx context.Context, hallID uint64, date, holdToken string) error {
	unlock := r.lockKey(hallID, date)
	defer unlock()

	cur, err := r.store.GetRecord(ctx, hallID, date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	if cur == nil || cur.Status.IsAvailable() {
		return nil
	}
	if cur.Status.State != model.StateHeld {
		return ErrConflict
	}
	if holdToken != cur.HoldToken {
		return ErrConflict
	}
	rec := model.AvailabilityRecord{HallID: hallID, Date: date, Status: model.Available()}
	if err := r.store.PutRecord(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	r.index.Set(hallID, date, rec.Status)
	return nil
}

// Cancel reverts a booked date to AVAILABLE.  A date that carries no
// booking yields ErrNotBooked – distinct from Release's no-op so
// callers can tell "was never booked" from "already released".
func (r *Resolver) Cancel(ctx context.Context, hallID uint64, date string) error {
	unlock := r.lockKey(hallID, date)
	defer unlock()

	cur, err := r.store.GetRecord(ctx, hallID, date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	if cur == nil || cur.Status.State != model.StateBooked {
		return ErrNotBooked
	}
	rec := model.AvailabilityRecord{HallID: hallID, Date: date, Status: model.Available()}
	if err := r.store.PutRecord(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	r.index.Set(hallID, date, rec.Status)
	return nil
}

// randomToken generates a random hexadecimal string of n bytes (2n hex
// characters) for hold tokens.  crypto/rand keeps tokens unguessable.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
