package booking

import (
	"context"
	"time"
)

// Engine composes the validator, matcher and transactioner behind the
// three operations the request layer consumes. All state lives in the
// stores; an Engine is safe for concurrent use by multiple requests.
type Engine struct {
	users        UserStore
	reservations ReservationStore
	validator    *Validator
	matcher      *Matcher
	booker       *Transactioner
}

// NewEngine wires an Engine from its two stores.
func NewEngine(users UserStore, reservations ReservationStore) *Engine {
	return &Engine{
		users:        users,
		reservations: reservations,
		validator:    NewValidator(users),
		matcher:      NewMatcher(reservations),
		booker:       NewTransactioner(reservations),
	}
}

// FindReservations returns the ranked candidate slots for a group at
// the desired time. The group is validated first; a member with an
// existing booking inside the two-hour window short-circuits the whole
// flow with ErrTimeConflict rather than silently filtering.
func (e *Engine) FindReservations(ctx context.Context, userIDs []uint64, desired time.Time) ([]Candidate, error) {
	ids, err := e.validator.Validate(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	booked, err := e.users.BookedStartTimes(ctx, ids)
	if err != nil {
		return nil, err
	}
	if HasConflict(booked, desired, OverlapWindow) {
		return nil, ErrTimeConflict
	}
	sets, err := e.users.DietRestrictions(ctx, ids)
	if err != nil {
		return nil, err
	}
	return e.matcher.FindCandidates(ctx, AggregateDiets(sets...), desired)
}

// BookReservation claims the slot for the group. It re-validates the
// group and re-checks the overlap window against the slot's own start
// time, so a candidate that went stale after the find step is rejected
// instead of double-booking a member.
func (e *Engine) BookReservation(ctx context.Context, reservationID uint64, userIDs []uint64) error {
	ids, err := e.validator.Validate(ctx, userIDs)
	if err != nil {
		return err
	}
	res, err := e.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	booked, err := e.users.BookedStartTimes(ctx, ids)
	if err != nil {
		return err
	}
	if HasConflict(booked, res.StartTime, OverlapWindow) {
		return ErrTimeConflict
	}
	return e.booker.Book(ctx, reservationID, ids)
}

// CancelReservation releases a booked slot. The operation is
// idempotent: repeating it succeeds and leaves the slot available.
func (e *Engine) CancelReservation(ctx context.Context, reservationID uint64) error {
	return e.booker.Cancel(ctx, reservationID)
}
