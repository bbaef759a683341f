// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation slot is successfully
// taken by a group. It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary database.
type ReservationBookedEvent struct {
	ReservationID  uint64   `json:"reservation_id"`
	RestaurantID   uint64   `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name"`
	StartsAt       string   `json:"starts_at"`
	NumSeats       uint32   `json:"num_seats"`
	UserIDs        []uint64 `json:"user_ids"`
	BookedAt       string   `json:"booked_at"`
}
