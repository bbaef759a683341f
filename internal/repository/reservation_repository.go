package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo owns the reservations table and the association rows
// hanging off it. It is the only code path that mutates the
// availability flag, and both mutations run inside a transaction so
// the flag and the association rows can never disagree in a committed
// state. It satisfies booking.ReservationStore.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// FindCandidates selects available reservations near the desired time
// at restaurants supporting every tag in diets. Filtering happens in
// SQL: the SET column is probed with FIND_IN_SET per tag, and
// TIMESTAMPDIFF bounds the proximity window inclusively. Ranking is
// repeated by the matcher, but ordering here keeps scans deterministic.
func (r *ReservationRepo) FindCandidates(ctx context.Context, diets []string, desired time.Time, proximity time.Duration) ([]booking.Candidate, error) {
	q := `SELECT resy.reservation_id, rest.restaurant_id, rest.name, resy.start_time,
	             resy.num_seats, rest.diet_support
	      FROM restaurants rest
	      INNER JOIN reservations resy ON rest.restaurant_id = resy.restaurant_id
	      WHERE resy.available = 1
	        AND ABS(TIMESTAMPDIFF(MINUTE, resy.start_time, ?)) <= ?`
	args := []interface{}{desired.UTC(), int64(proximity / time.Minute)}
	for _, tag := range diets {
		q += " AND FIND_IN_SET(?, rest.diet_support) > 0"
		args = append(args, tag)
	}
	q += ` ORDER BY ABS(TIMESTAMPDIFF(MINUTE, resy.start_time, ?)) ASC, rest.restaurant_id ASC`
	args = append(args, desired.UTC())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storageErr("find candidates", err)
	}
	defer rows.Close()
	cands := make([]booking.Candidate, 0)
	for rows.Next() {
		var c booking.Candidate
		var supported string
		if err := rows.Scan(&c.ReservationID, &c.RestaurantID, &c.RestaurantName,
			&c.StartTime, &c.NumSeats, &supported); err != nil {
			return nil, storageErr("find candidates", err)
		}
		c.StartTime = c.StartTime.UTC()
		c.SupportedDiets = model.ParseDietSet(supported)
		cands = append(cands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("find candidates", err)
	}
	return cands, nil
}

// GetReservation returns a single slot or booking.ErrReservationNotFound.
func (r *ReservationRepo) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT reservation_id, restaurant_id, start_time, num_seats, available, created_at
	           FROM reservations WHERE reservation_id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.RestaurantID, &res.StartTime, &res.NumSeats, &res.Available, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, storageErr("get reservation", err)
	}
	res.StartTime = res.StartTime.UTC()
	return &res, nil
}

// BookReservation claims the slot with a conditional update and writes
// the association rows in the same transaction. The WHERE available=1
// clause makes the claim a compare-and-swap: of two concurrent callers
// exactly one update reports an affected row, and the loser's
// transaction rolls back having changed nothing.
func (r *ReservationRepo) BookReservation(ctx context.Context, id uint64, userIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("book reservation", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE reservations SET available = 0 WHERE reservation_id = ? AND available = 1`, id)
	if err != nil {
		return storageErr("book reservation", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("book reservation", err)
	}
	if affected == 0 {
		// Lost the claim or the slot never existed; look once to tell which.
		var available bool
		err := tx.QueryRowContext(ctx,
			`SELECT available FROM reservations WHERE reservation_id = ?`, id).Scan(&available)
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrReservationNotFound
		}
		if err != nil {
			return storageErr("book reservation", err)
		}
		return booking.ErrAlreadyBooked
	}

	q := `INSERT INTO user_reservations_association (user_id, reservation_id) VALUES `
	args := make([]interface{}, 0, len(userIDs)*2)
	for i, uid := range userIDs {
		if i > 0 {
			q += ","
		}
		q += "(?, ?)"
		args = append(args, uid, id)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return storageErr("book reservation", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("book reservation", err)
	}
	return nil
}

// CancelReservation marks the slot available and removes every
// association row in one transaction. Cancelling an already-available
// slot commits harmlessly, which makes retries safe.
func (r *ReservationRepo) CancelReservation(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("cancel reservation", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE reservation_id = ?)`, id).Scan(&exists)
	if err != nil {
		return storageErr("cancel reservation", err)
	}
	if !exists {
		return booking.ErrReservationNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET available = 1 WHERE reservation_id = ?`, id); err != nil {
		return storageErr("cancel reservation", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM user_reservations_association WHERE reservation_id = ?`, id); err != nil {
		return storageErr("cancel reservation", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("cancel reservation", err)
	}
	return nil
}

// ListByRestaurant returns every slot offered by a restaurant, soonest
// first. Used by the public browse endpoints only.
func (r *ReservationRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error) {
	const q = `SELECT reservation_id, restaurant_id, start_time, num_seats, available, created_at
	           FROM reservations WHERE restaurant_id = ? ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, storageErr("list reservations", err)
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.RestaurantID, &res.StartTime,
			&res.NumSeats, &res.Available, &res.CreatedAt); err != nil {
			return nil, storageErr("list reservations", err)
		}
		res.StartTime = res.StartTime.UTC()
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list reservations", err)
	}
	return out, nil
}
