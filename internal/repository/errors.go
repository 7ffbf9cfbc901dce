// Package repository implements data access for the booking service:
// the MySQL-backed availability store consumed by the booking core and
// the read-only hall directory.  Sentinel errors defined here let
// handlers distinguish failure scenarios without inspecting driver
// errors.
package repository

import "errors"

// ErrHallNotFound is returned when a hall lookup fails.  Handlers
// should translate this into an HTTP 404 response.
var ErrHallNotFound = errors.New("hall not found")
