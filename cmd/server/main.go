package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"    // Matching and booking engine
	"github.com/iliyamo/restaurant-table-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/restaurant-table-reservation/internal/database"   // MySQL connection helper
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"      // Booking event consumer
	"github.com/iliyamo/restaurant-table-reservation/internal/repository" // Data access layer
	"github.com/iliyamo/restaurant-table-reservation/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; cache and rate limiting are skipped when absent.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	reservations := repository.NewReservationRepo(db)
	restaurants := repository.NewRestaurantRepo(db)

	engine := booking.NewEngine(users, reservations)

	authHandler := &handler.AuthHandler{Cfg: cfg, Users: users}
	publicHandler := &handler.PublicHandler{RestaurantRepo: restaurants, ReservationRepo: reservations}
	reservationHandler := handler.NewReservationHandler(engine, reservations, restaurants)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, rdb)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret, rdb)

	// Consume booked events in the background; the consumer reconnects on
	// broker failures and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
