package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware" // import middleware for JWT authentication and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware. Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Routes under /v1/auth do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	// Protected endpoints require a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance. The provided PublicHandler exposes handlers that return
// sanitized data for restaurants and their open slots. When a Redis client
// is available the list endpoints are served through the response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	var mws []echo.MiddlewareFunc
	if rdb != nil {
		mws = append(mws, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	// Expose the list of all restaurants with their supported diet tags.
	e.GET("/v1/restaurants", p.GetPublicRestaurants, mws...)
	// List reservation slots of a specific restaurant.
	e.GET("/v1/restaurants/:id/slots", p.GetPublicRestaurantSlots, mws...)
}

// RegisterReservations registers the matching and booking endpoints. All of
// them require authentication; when a Redis client is available the group is
// additionally rate limited per user.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	if rdb != nil {
		g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}
	// Find candidate slots for a group at a desired time.
	g.GET("/find", r.Find)
	// Take a slot for a group. Exactly one of two concurrent calls wins.
	g.POST("/book", r.Book)
	// Release a slot. Safe to retry.
	g.POST("/cancel", r.Cancel)
}
