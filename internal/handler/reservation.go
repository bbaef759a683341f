package handler

import (
	"context"  // timeouts on persistence-backed calls
	"errors"   // errors.Is against the engine's sentinels
	"net/http" // HTTP status codes
	"time"     // desired-time parsing

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// ReservationHandler exposes the booking engine over HTTP. The
// handler only parses parameters, maps engine errors to status codes
// and emits the booked event; every decision belongs to the engine.
type ReservationHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
	Restaurants  *repository.RestaurantRepo
}

// NewReservationHandler constructs a ReservationHandler. All
// dependencies must be non-nil.
func NewReservationHandler(engine *booking.Engine, reservations *repository.ReservationRepo, restaurants *repository.RestaurantRepo) *ReservationHandler {
	if engine == nil || reservations == nil || restaurants == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine, Reservations: reservations, Restaurants: restaurants}
}

// timeFormats accepted for the desired reservation time. Clients send
// either full RFC3339 or a bare local timestamp, which is taken as UTC.
var timeFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func parseDesiredTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeFormats {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Find handles GET /v1/reservations/find?user_ids=1,2&time=2024-05-18T19:00:00.
// It returns the ranked candidate slots for the group, 200 with an
// empty list when nothing matches, and 409 when a group member already
// holds a booking within the two-hour window.
func (h *ReservationHandler) Find(c echo.Context) error {
	rawIDs := c.QueryParam("user_ids")
	rawTime := c.QueryParam("time")
	if rawIDs == "" || rawTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_ids and time are required"})
	}
	userIDs, err := parseIDList(rawIDs)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_ids"})
	}
	desired, err := parseDesiredTime(rawTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cands, err := h.Engine.FindReservations(ctx, userIDs, desired)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cands})
}

type bookReq struct {
	ReservationID uint64   `json:"reservation_id"`
	UserIDs       []uint64 `json:"user_ids"`
}

// Book handles POST /v1/reservations/book. Exactly one of two
// concurrent calls for the same slot succeeds; the other receives 409.
func (h *ReservationHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ReservationID == 0 || len(req.UserIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id and user_ids are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.BookReservation(ctx, req.ReservationID, req.UserIDs); err != nil {
		return engineError(c, err)
	}

	// Best effort: the booking stands even if the event cannot be
	// published; the publisher logs its own failures.
	if res, err := h.Reservations.GetReservation(ctx, req.ReservationID); err == nil {
		ev := queue.ReservationBookedEvent{
			ReservationID: res.ID,
			RestaurantID:  res.RestaurantID,
			UserIDs:       req.UserIDs,
			StartsAt:      res.StartTime.Format(time.RFC3339),
			NumSeats:      res.NumSeats,
			BookedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if rest, err := h.Restaurants.GetByID(ctx, res.RestaurantID); err == nil {
			ev.RestaurantName = rest.Name
		}
		_ = queue_publisher.PublishReservationBooked(ctx, ev)
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "booked", "reservation_id": req.ReservationID})
}

type cancelReq struct {
	ReservationID uint64 `json:"reservation_id"`
}

// Cancel handles POST /v1/reservations/cancel. Cancelling an
// already-available reservation succeeds, so the endpoint is safe to
// retry.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.CancelReservation(ctx, req.ReservationID); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "cancelled", "reservation_id": req.ReservationID})
}

// engineError translates the engine's error taxonomy into HTTP
// responses: caller mistakes are 400, missing slots 404, conflicts
// 409, transient storage faults 503 with a retry hint.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrEmptyGroup), errors.Is(err, booking.ErrUnknownUser):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrTimeConflict), errors.Is(err, booking.ErrAlreadyBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrStorageUnavailable):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
