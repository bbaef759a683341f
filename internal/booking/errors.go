// Package booking implements the reservation matching and booking
// engine: group validation, diet aggregation, time-overlap detection,
// candidate matching, and the atomic available->booked state
// transition with its reverse. Error values defined here let the HTTP
// layer distinguish caller mistakes from conflicts and transient
// storage faults.
package booking

import "errors"

// ErrEmptyGroup is returned when an operation is invoked with no user
// identifiers. Handlers should translate this into an HTTP 400.
var ErrEmptyGroup = errors.New("no users in group")

// ErrUnknownUser is returned when one or more identifiers in the group
// do not correspond to an existing user record.
var ErrUnknownUser = errors.New("unknown user in group")

// ErrTimeConflict is returned when a member of the group already holds
// a booking within the two-hour dining window of the requested time.
var ErrTimeConflict = errors.New("reservation time conflicts with an existing booking")

// ErrReservationNotFound is returned when the referenced reservation
// slot does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrAlreadyBooked is returned when a book operation targets a slot
// that is no longer available. Exactly one of two concurrent bookings
// of the same slot receives this error.
var ErrAlreadyBooked = errors.New("reservation already booked")

// ErrStorageUnavailable marks a transient persistence fault. The
// engine never retries; callers may retry with backoff. Repository
// implementations wrap their driver errors with this sentinel so
// errors.Is works across layers.
var ErrStorageUnavailable = errors.New("storage unavailable")
