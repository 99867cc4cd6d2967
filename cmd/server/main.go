package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // godotenv loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/moviweb/moviweb/internal/config"   // Internal config loader
	"github.com/moviweb/moviweb/internal/database" // Internal database setup
	"github.com/moviweb/moviweb/internal/handler"  // Internal HTTP handlers
	"github.com/moviweb/moviweb/internal/omdb"     // Internal metadata lookup client
	"github.com/moviweb/moviweb/internal/queue"    // Internal activity consumer
	"github.com/moviweb/moviweb/internal/router"   // Internal router setup
	"github.com/moviweb/moviweb/internal/service"  // Internal queue publisher
	"github.com/moviweb/moviweb/internal/store"    // Internal data store
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env wins in production
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unavailable; middleware degrades
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}

	lookup := omdb.New(cfg.OMDBAPIKey)
	if cfg.OMDBAPIKey == "" {
		log.Printf("OMDB_API_KEY not set; movies will be stored without enrichment")
	}

	st := store.New(db, lookup, queue_publisher.New())

	// Consume activity events in the background; reconnects on its own.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, handler.NewAPIHandler(st), rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
