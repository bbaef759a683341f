package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// UserRepo provides access to the users table and to the booked-times
// view the engine needs. It satisfies booking.UserStore.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID. Diet tags must already be
// canonical (see model.CanonicalDiet); they are stored in the SET
// column as a comma-separated list.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, diets []string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, diet_restrictions) VALUES (?,?,?,?)",
		name, email, hash, model.FormatDietSet(diets))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, storageErr("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("create user", err)
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getWhere(ctx, "email=?", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getWhere(ctx, "user_id=?", id)
}

func (r *UserRepo) getWhere(ctx context.Context, cond string, arg interface{}) (model.User, error) {
	var u model.User
	var diets string
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,name,email,password_hash,diet_restrictions,created_at FROM users WHERE "+cond+" LIMIT 1",
		arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &diets, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, err
		}
		return u, storageErr("get user", err)
	}
	u.Diets = model.ParseDietSet(diets)
	return u, nil
}

// CountExisting returns how many of the given ids match a user row.
// The engine compares the count against the deduplicated group size to
// detect unknown users without enumerating them.
func (r *UserRepo) CountExisting(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := "SELECT COUNT(*) FROM users WHERE user_id IN (" + placeholders(len(ids)) + ")"
	var n int
	if err := r.DB.QueryRowContext(ctx, q, idArgs(ids)...).Scan(&n); err != nil {
		return 0, storageErr("count users", err)
	}
	return n, nil
}

// DietRestrictions returns one tag set per user in the group. Users
// with nothing recorded contribute an empty set, so the order and
// length of the result mirrors ids.
func (r *UserRepo) DietRestrictions(ctx context.Context, ids []uint64) ([][]string, error) {
	if len(ids) == 0 {
		return [][]string{}, nil
	}
	q := "SELECT user_id, diet_restrictions FROM users WHERE user_id IN (" + placeholders(len(ids)) + ")"
	rows, err := r.DB.QueryContext(ctx, q, idArgs(ids)...)
	if err != nil {
		return nil, storageErr("get diet restrictions", err)
	}
	defer rows.Close()
	byID := make(map[uint64][]string, len(ids))
	for rows.Next() {
		var id uint64
		var diets string
		if err := rows.Scan(&id, &diets); err != nil {
			return nil, storageErr("get diet restrictions", err)
		}
		byID[id] = model.ParseDietSet(diets)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get diet restrictions", err)
	}
	sets := make([][]string, 0, len(ids))
	for _, id := range ids {
		set := byID[id]
		if set == nil {
			set = []string{}
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// BookedStartTimes returns the distinct start times of reservations
// currently held by any user in the group.
func (r *UserRepo) BookedStartTimes(ctx context.Context, ids []uint64) ([]time.Time, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := `SELECT DISTINCT resy.start_time
	      FROM reservations resy
	      JOIN user_reservations_association assoc ON assoc.reservation_id = resy.reservation_id
	      WHERE assoc.user_id IN (` + placeholders(len(ids)) + `)`
	rows, err := r.DB.QueryContext(ctx, q, idArgs(ids)...)
	if err != nil {
		return nil, storageErr("get booked times", err)
	}
	defer rows.Close()
	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, storageErr("get booked times", err)
		}
		times = append(times, t.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get booked times", err)
	}
	return times, nil
}
