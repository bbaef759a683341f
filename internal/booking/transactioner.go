package booking

import "context"

// Transactioner drives the per-reservation state machine: Available
// and Booked are the only states, and this type is the only component
// that requests the transition between them. The actual claim is a
// conditional update executed by the store so that two concurrent
// bookings of the same slot resolve to exactly one winner.
type Transactioner struct {
	reservations ReservationStore
}

// NewTransactioner returns a Transactioner backed by the given store.
func NewTransactioner(reservations ReservationStore) *Transactioner {
	return &Transactioner{reservations: reservations}
}

// Book claims the reservation for the group. It reads current
// availability as a precondition and fails fast with ErrAlreadyBooked
// when the slot is taken; the store's conditional transition then
// settles any race with a concurrent caller, so a stale read here can
// never produce two winners. On success the availability flip and the
// association writes are visible together or not at all.
func (t *Transactioner) Book(ctx context.Context, reservationID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrEmptyGroup
	}
	res, err := t.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if !res.Available {
		return ErrAlreadyBooked
	}
	return t.reservations.BookReservation(ctx, reservationID, userIDs)
}

// Cancel reverses a booking: the slot becomes available and all of its
// association rows are removed in one unit. Cancelling a slot that is
// already available succeeds without effect, so retrying a cancel is
// always safe.
func (t *Transactioner) Cancel(ctx context.Context, reservationID uint64) error {
	if _, err := t.reservations.GetReservation(ctx, reservationID); err != nil {
		return err
	}
	return t.reservations.CancelReservation(ctx, reservationID)
}
