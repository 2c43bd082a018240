// Package router defines how HTTP routes are registered for the API.
// All endpoints live under /api, mirroring the public surface:
// auth under /api/auth, hotel reads public, every mutation behind the
// JWT + admin gate, and user resources behind the self-or-admin policy.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg    config.Config
	Redis  *redis.Client
	Auth   *handler.AuthHandler
	Hotels *handler.HotelHandler
	Rooms  *handler.RoomHandler
	Users  *handler.UserHandler
}

// RegisterRoutes mounts every route of the API onto the Echo instance.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	jwtAuth := middleware.JWTAuth(d.Cfg.JWTSecret)
	adminOnly := middleware.RequireAdmin()
	cached := middleware.Cache(config.LoadCacheConfig(), d.Redis)

	// Auth endpoints sit behind the rate limiter: login and register are
	// the only routes worth brute-forcing.
	auth := e.Group("/api/auth", middleware.RateLimit(config.LoadRateLimitConfig(), d.Redis))
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	// Public hotel reads, cacheable.
	hotels := e.Group("/api/hotels")
	hotels.GET("", d.Hotels.GetHotels, cached)
	hotels.GET("/countByCity", d.Hotels.CountByCity, cached)
	hotels.GET("/countByType", d.Hotels.CountByType, cached)
	hotels.GET("/find/:id", d.Hotels.GetHotel, cached)
	hotels.GET("/room/:id", d.Hotels.GetHotelRooms, cached)

	// Admin-only hotel mutations.
	hotels.POST("", d.Hotels.CreateHotel, jwtAuth, adminOnly)
	hotels.PUT("/:id", d.Hotels.UpdateHotel, jwtAuth, adminOnly)
	hotels.DELETE("/:id", d.Hotels.DeleteHotel, jwtAuth, adminOnly)

	// Rooms: public reads, admin mutations.
	rooms := e.Group("/api/rooms")
	rooms.GET("", d.Rooms.GetRooms)
	rooms.GET("/:id", d.Rooms.GetRoom)
	rooms.POST("/:hotelId", d.Rooms.CreateRoom, jwtAuth, adminOnly)
	rooms.PUT("/availability/:id", d.Rooms.UpdateRoomAvailability, jwtAuth, adminOnly)
	rooms.PUT("/:id", d.Rooms.UpdateRoom, jwtAuth, adminOnly)
	rooms.DELETE("/:id/:hotelId", d.Rooms.DeleteRoom, jwtAuth, adminOnly)

	// User resources: owner or admin on single records, admin for the list.
	users := e.Group("/api/users", jwtAuth)
	users.GET("", d.Users.GetUsers, adminOnly)
	users.GET("/:id", d.Users.GetUser, middleware.RequireSelfOrAdmin("id"))
	users.PUT("/:id", d.Users.UpdateUser, middleware.RequireSelfOrAdmin("id"))
	users.DELETE("/:id", d.Users.DeleteUser, middleware.RequireSelfOrAdmin("id"))
}
