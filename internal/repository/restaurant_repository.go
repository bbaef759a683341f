package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ErrRestaurantNotFound is returned when a restaurant lookup misses.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepo reads the restaurants reference table. The booking
// engine never touches restaurants directly (matching joins them in
// SQL); this repo serves the public browse endpoints.
type RestaurantRepo struct {
	db *sql.DB
}

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// ListAll returns every restaurant ordered by ID.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT restaurant_id, name, diet_support, created_at
	           FROM restaurants ORDER BY restaurant_id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, storageErr("list restaurants", err)
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var rest model.Restaurant
		var diets string
		if err := rows.Scan(&rest.ID, &rest.Name, &diets, &rest.CreatedAt); err != nil {
			return nil, storageErr("list restaurants", err)
		}
		rest.Diets = model.ParseDietSet(diets)
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list restaurants", err)
	}
	return out, nil
}

// GetByID returns one restaurant or ErrRestaurantNotFound.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
	const q = `SELECT restaurant_id, name, diet_support, created_at
	           FROM restaurants WHERE restaurant_id = ?`
	var rest model.Restaurant
	var diets string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rest.ID, &rest.Name, &diets, &rest.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rest, ErrRestaurantNotFound
		}
		return rest, storageErr("get restaurant", err)
	}
	rest.Diets = model.ParseDietSet(diets)
	return rest, nil
}
