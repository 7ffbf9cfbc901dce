package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kovil/hall-booking/internal/model"
)

var errStoreDown = errors.New("store down")

// fakeStore is an in-memory Store used across the package tests.  It
// honours the contract's normalisation rule (expired holds read as
// available) against an injectable clock, and can simulate a backend
// outage.
type fakeStore struct {
	mu   sync.Mutex
	recs map[string]model.AvailabilityRecord
	now  func() time.Time
	down bool
}

func newFakeStore(now func() time.Time) *fakeStore {
	if now == nil {
		now = time.Now
	}
	return &fakeStore{recs: make(map[string]model.AvailabilityRecord), now: now}
}

func key(hallID uint64, date string) string {
	return fmt.Sprintf("%d|%s", hallID, date)
}

func (f *fakeStore) normalize(rec model.AvailabilityRecord) model.AvailabilityRecord {
	if rec.Status.State == model.StateHeld {
		if rec.HoldExpiresAt == nil || !rec.HoldExpiresAt.After(f.now().UTC()) {
			rec.Status = model.Available()
			rec.HoldToken = ""
			rec.HoldExpiresAt = nil
		}
	}
	return rec
}

func (f *fakeStore) ListRecords(ctx context.Context) ([]model.AvailabilityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errStoreDown
	}
	out := make([]model.AvailabilityRecord, 0, len(f.recs))
	for _, rec := range f.recs {
		out = append(out, f.normalize(rec))
	}
	return out, nil
}

func (f *fakeStore) GetRecord(ctx context.Context, hallID uint64, date string) (*model.AvailabilityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errStoreDown
	}
	rec, ok := f.recs[key(hallID, date)]
	if !ok {
		return nil, nil
	}
	rec = f.normalize(rec)
	return &rec, nil
}

func (f *fakeStore) PutRecord(ctx context.Context, rec model.AvailabilityRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errStoreDown
	}
	f.recs[key(rec.HallID, rec.Date)] = rec
	return nil
}

func (f *fakeStore) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}
