package model

import "time"

// Hall represents a bookable venue on the temple grounds.  Halls are
// managed by an external administration tool; this service only reads
// them to pair availability data with display information.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – human readable hall name.
//  Description – optional description of the hall.
//  Images      – ordered image references for the hall carousel.
//  IsActive    – whether the hall is currently offered for booking.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Hall struct {
	ID          uint64    // halls.id
	Name        string    // halls.name
	Description *string   // halls.description (nullable)
	Images      []string  // hall_images.url ordered by position
	IsActive    bool      // halls.is_active
	CreatedAt   time.Time // halls.created_at
	UpdatedAt   time.Time // halls.updated_at
}
