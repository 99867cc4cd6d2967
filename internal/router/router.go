package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/moviweb/moviweb/internal/config"     // config supplies middleware settings
	"github.com/moviweb/moviweb/internal/handler"    // handler implements the endpoints
	"github.com/moviweb/moviweb/internal/middleware" // middleware provides rate limiting and caching
)

// RegisterRoutes wires every endpoint of the service onto the
// provided Echo instance. The token-bucket rate limiter applies to
// all /v1 routes. The Redis response cache applies only to the
// service's own GET listing endpoints; the metadata search endpoint
// is deliberately left uncached so lookups always hit the external
// service fresh. Both middlewares degrade to pass-through when rdb
// is nil.
func RegisterRoutes(e *echo.Echo, a *handler.APIHandler, rdb *redis.Client) {
	// Health check for load balancers and monitoring; no middleware.
	e.GET("/healthz", handler.Health)

	rate := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1")
	v1.Use(rate)

	// User collection and item endpoints.
	v1.GET("/users", a.ListUsers, cache)
	v1.POST("/users", a.CreateUser)
	v1.GET("/users/:id", a.GetUser, cache)
	v1.DELETE("/users/:id", a.DeleteUser)

	// Movies live under their owning user for listing and creation.
	v1.GET("/users/:id/movies", a.ListMovies, cache)
	v1.POST("/users/:id/movies", a.AddMovie)

	// Item-level movie operations address the movie directly.
	v1.PUT("/movies/:id", a.UpdateMovie)
	v1.DELETE("/movies/:id", a.DeleteMovie)

	// Metadata search against the external service; uncached.
	v1.GET("/search/movies", a.SearchMovies)
}
