package availability

import (
	"context"

	"github.com/kovil/hall-booking/internal/model"
)

// Store is the narrow persistence contract the booking core depends
// on.  The production implementation lives in internal/repository and
// talks to MySQL; tests substitute an in-memory fake.
//
// Reads must normalise expired holds: a HELD record whose expiry has
// passed is reported as AVAILABLE (and GetRecord may return it with the
// AVAILABLE state so callers can still see the row).  A (hall, date)
// pair with no record at all is reported by GetRecord as (nil, nil) –
// absence is the legitimate open-world default, never an error.
//
// PutRecord upserts by (HallID, Date) and must never delete rows.
type Store interface {
	// ListRecords returns every availability record, normalised.
	ListRecords(ctx context.Context) ([]model.AvailabilityRecord, error)
	// GetRecord returns the record for one key, or (nil, nil) when no
	// row exists.
	GetRecord(ctx context.Context, hallID uint64, date string) (*model.AvailabilityRecord, error)
	// PutRecord writes the record for its (HallID, Date) key.
	PutRecord(ctx context.Context, rec model.AvailabilityRecord) error
}
