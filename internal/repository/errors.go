// Package repository implements the persistence boundary on MySQL.
// Each query decodes into an explicit struct once, here; nothing
// downstream inspects raw rows. Errors that belong to the engine's
// taxonomy (not found, already booked, storage unavailable) are
// returned as the booking package's sentinels so handlers and the
// engine can branch with errors.Is regardless of which layer produced
// them.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
)

// ErrEmailExists is returned when signup collides with an existing
// account. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// storageErr wraps a driver failure with booking.ErrStorageUnavailable
// so callers see a retryable condition rather than a bare driver error.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, booking.ErrStorageUnavailable)
}

// placeholders returns "?,?,...,?" with n markers for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// idArgs converts identifiers into driver arguments for an IN clause.
func idArgs(ids []uint64) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
