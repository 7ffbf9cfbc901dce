package availability

import (
	"sync"

	"github.com/kovil/hall-booking/internal/model"
)

// Index is the read-side projection of the availability store: an
// in-memory map answering "what is the status of hall H on date D"
// without a round trip to the database.  It is a disposable cache –
// it never originates state changes and can be rebuilt from the store
// at any time.
//
// Refresh swaps the entire snapshot atomically: a reader always sees
// either the old complete snapshot or the new one, never a mix.
type Index struct {
	mu    sync.RWMutex
	byKey map[uint64]map[string]model.DateStatus
}

// NewIndex returns an empty index; every key reads as AVAILABLE until
// the first Refresh.
func NewIndex() *Index {
	return &Index{byKey: make(map[uint64]map[string]model.DateStatus)}
}

// Refresh replaces the projection with the given records.  The new map
// is built off-lock and installed with a single pointer swap under the
// write lock.
func (ix *Index) Refresh(records []model.AvailabilityRecord) {
	next := make(map[uint64]map[string]model.DateStatus, len(records))
	for _, rec := range records {
		dates, ok := next[rec.HallID]
		if !ok {
			dates = make(map[string]model.DateStatus)
			next[rec.HallID] = dates
		}
		dates[rec.Date] = rec.Status
	}
	ix.mu.Lock()
	ix.byKey = next
	ix.mu.Unlock()
}

// StatusOf returns the projected status for one hall and date.  A key
// with no entry is AVAILABLE by definition, not an error.
func (ix *Index) StatusOf(hallID uint64, date string) model.DateStatus {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if dates, ok := ix.byKey[hallID]; ok {
		if st, ok := dates[date]; ok {
			return st
		}
	}
	return model.Available()
}

// AllForHall returns a copy of every projected date status for the
// given hall.  Dates absent from the result are available.
func (ix *Index) AllForHall(hallID uint64) map[string]model.DateStatus {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make(map[string]model.DateStatus, len(ix.byKey[hallID]))
	for date, st := range ix.byKey[hallID] {
		out[date] = st
	}
	return out
}

// Set point-updates a single entry.  The resolver calls it after a
// successful transition so readers in the same process see the new
// state before the next full Refresh.  Setting an AVAILABLE status
// removes the entry, matching the open-world default.
func (ix *Index) Set(hallID uint64, date string, st model.DateStatus) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	dates, ok := ix.byKey[hallID]
	if st.IsAvailable() {
		if ok {
			delete(dates, date)
		}
		return
	}
	if !ok {
		dates = make(map[string]model.DateStatus)
		ix.byKey[hallID] = dates
	}
	dates[date] = st
}
