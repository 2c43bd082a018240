package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil disables cache + rate limiting
	if rdb == nil {
		log.Print("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)

	e := echo.New()
	router.RegisterRoutes(e, router.Deps{
		Cfg:    cfg,
		Redis:  rdb,
		Auth:   handler.NewAuthHandler(cfg, users),
		Hotels: handler.NewHotelHandler(hotels),
		Rooms:  handler.NewRoomHandler(rooms),
		Users:  handler.NewUserHandler(cfg, users),
	})

	// Booking events are consumed in the background; the consumer keeps
	// reconnecting on its own and never takes the server down.
	go queue.StartBookingConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
