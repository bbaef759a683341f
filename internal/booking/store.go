package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Candidate is one reservation slot that satisfies a group's diet
// constraint and time proximity. TimeDiffMinutes is the signed offset
// of the desired time from the slot's start time; ranking uses its
// absolute value.
type Candidate struct {
	ReservationID   uint64    `json:"reservation_id"`
	RestaurantID    uint64    `json:"restaurant_id"`
	RestaurantName  string    `json:"restaurant_name"`
	StartTime       time.Time `json:"start_time"`
	NumSeats        uint32    `json:"num_seats"`
	TimeDiffMinutes int64     `json:"time_diff_minutes"`
	SupportedDiets  []string  `json:"supported_diets"`
}

// UserStore is the read-only view of user records the engine needs.
// Implementations wrap persistence failures in ErrStorageUnavailable.
type UserStore interface {
	// CountExisting returns how many of the given identifiers match an
	// existing user row. Identifiers are assumed to be deduplicated.
	CountExisting(ctx context.Context, ids []uint64) (int, error)
	// DietRestrictions returns the diet tag set recorded for each user
	// in the group. Users with no restrictions contribute an empty set.
	DietRestrictions(ctx context.Context, ids []uint64) ([][]string, error)
	// BookedStartTimes returns the start times of every reservation
	// currently booked by any user in the group.
	BookedStartTimes(ctx context.Context, ids []uint64) ([]time.Time, error)
}

// ReservationStore provides reservation slot reads and the two atomic
// mutations of the engine. BookReservation and CancelReservation must
// each execute as a single unit of work: the availability flag and the
// association rows may never be observed disagreeing.
type ReservationStore interface {
	// FindCandidates returns available slots whose restaurant supports
	// every tag in diets (an empty constraint matches all restaurants)
	// and whose start time lies within proximity of desired, boundary
	// inclusive. Order of the result is unspecified; the matcher ranks.
	FindCandidates(ctx context.Context, diets []string, desired time.Time, proximity time.Duration) ([]Candidate, error)
	// GetReservation returns the slot or ErrReservationNotFound.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	// BookReservation atomically transitions the slot from available to
	// booked and writes one association row per user. It returns
	// ErrAlreadyBooked when the conditional transition claims no row,
	// and ErrReservationNotFound when the slot does not exist. On any
	// error no partial state is left behind.
	BookReservation(ctx context.Context, id uint64, userIDs []uint64) error
	// CancelReservation atomically marks the slot available again and
	// deletes its association rows. Cancelling an already-available
	// slot is a successful no-op. ErrReservationNotFound is returned
	// when the slot does not exist.
	CancelReservation(ctx context.Context, id uint64) error
}
