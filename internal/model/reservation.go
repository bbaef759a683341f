package model

import "time"

// Reservation is a fixed table slot offered by a restaurant.  A slot is
// bookable by exactly one group.  The availability flag and the
// association rows must never disagree: a reservation is available iff
// it has no associated users.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant.
//  StartTime    – scheduled start instant (UTC).  Slots last two hours.
//  NumSeats     – seat capacity of the table.
//  Available    – true while the slot is unbooked.
//  CreatedAt    – timestamp of creation.
type Reservation struct {
	ID           uint64    // reservations.reservation_id
	RestaurantID uint64    // reservations.restaurant_id
	StartTime    time.Time // reservations.start_time
	NumSeats     uint32    // reservations.num_seats
	Available    bool      // reservations.available
	CreatedAt    time.Time // reservations.created_at
}

// UserReservation links a user to a booked reservation.  Rows exist only
// while the reservation is booked; cancellation deletes them together
// with flipping the availability flag.
//
// Fields:
//  UserID        – the associated user.
//  ReservationID – the booked reservation.
type UserReservation struct {
	UserID        uint64 // user_reservations_association.user_id
	ReservationID uint64 // user_reservations_association.reservation_id
}
