package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/RoiCoDA/AbsoluteCinema/internal/config"
	"github.com/RoiCoDA/AbsoluteCinema/internal/handler"
	"github.com/RoiCoDA/AbsoluteCinema/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Rooms   *handler.RoomHandler
	Booking *handler.BookingHandler
}

// Register wires all routes onto the Echo instance. Public catalog
// reads sit behind the Redis response cache; everything sits behind
// the token-bucket limiter; room mutations require a valid access
// token and promotion additionally requires the admin role. Seat and
// room state endpoints are never cached.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)

	e.Use(limiter)

	e.GET("/healthz", handler.Health)

	// Public browsing. The catalog never changes at request time, so
	// these are safe behind the response cache.
	pub := e.Group("/v1")
	pub.GET("/movies", h.Catalog.ListMovies, cache)
	pub.GET("/movies/search", h.Catalog.SearchMovies, cache)
	pub.GET("/cities", h.Catalog.ListCities, cache)

	// Live state, cache-free.
	pub.GET("/movies/:id/context", h.Catalog.MovieContext)
	pub.GET("/cities/:id/locations", h.Catalog.CityLocations)
	pub.GET("/rooms/:id", h.Rooms.Get)
	pub.GET("/rooms/:id/seats", h.Booking.Seats)

	// Phone login flow.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/request-code", h.Auth.RequestCode)
	authGroup.POST("/verify", h.Auth.VerifyCode)
	authGroup.POST("/register", h.Auth.Register, auth)

	// Authenticated operations.
	priv := e.Group("/v1", auth)
	priv.GET("/me", h.Auth.Me)
	priv.POST("/rooms", h.Rooms.Create)
	priv.POST("/rooms/:id/votes", h.Rooms.Vote)
	priv.POST("/rooms/:id/bookings", h.Booking.Reserve)
	priv.POST("/rooms/:id/promote", h.Rooms.Promote, middleware.RequireRole("admin"))
}
