// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse restaurants and their open reservation slots
// without requiring authentication. Sensitive fields (timestamps, internal
// flags) are filtered from responses.

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
	RestaurantRepo  *repository.RestaurantRepo  // provides access to restaurant data
	ReservationRepo *repository.ReservationRepo // provides access to reservation slot data
}

// PublicRestaurant represents a restaurant exposed via the public API. It
// contains only safe fields.
type PublicRestaurant struct {
	ID    uint64   `json:"id"`
	Name  string   `json:"name"`
	Diets []string `json:"supported_diets"`
}

// PublicSlot represents an open reservation slot in list responses.
type PublicSlot struct {
	ID        uint64    `json:"id"`
	StartTime time.Time `json:"start_time"`
	NumSeats  uint32    `json:"num_seats"`
	Available bool      `json:"available"`
}

// GetPublicRestaurants returns a list of all restaurants accessible to
// unauthenticated users. Response JSON contains an "items" array of
// PublicRestaurant.
func (h *PublicHandler) GetPublicRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	restaurants, err := h.RestaurantRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, PublicRestaurant{ID: r.ID, Name: r.Name, Diets: r.Diets})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicRestaurantSlots lists reservation slots of a restaurant for
// unauthenticated users. It validates the restaurant exists, then returns
// only non-sensitive fields.
func (h *PublicHandler) GetPublicRestaurantSlots(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	// ensure restaurant exists
	if _, err := h.RestaurantRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	slots, err := h.ReservationRepo.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, PublicSlot{ID: s.ID, StartTime: s.StartTime, NumSeats: s.NumSeats, Available: s.Available})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
