package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"showtime-itinerary-service/internal/adapters/cache"
	"showtime-itinerary-service/internal/adapters/repositories"
	"showtime-itinerary-service/internal/api"
	"showtime-itinerary-service/internal/api/handlers"
	"showtime-itinerary-service/internal/config"
	"showtime-itinerary-service/internal/platform/db"
	"showtime-itinerary-service/internal/ports"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires Postgres and the optional Redis plan cache behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	planCache, closeCache, err := openPlanCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	repo := repositories.NewSQLVenueRepository(conn)
	router := api.NewRouter(repo, planCache, handlers.PlanDefaults{
		DecayFactor:    cfg.DecayFactor,
		Horizon:        cfg.HorizonMinutes,
		ExactMaxPaths:  cfg.ExactMaxPaths,
		ExactMaxVisits: cfg.ExactMaxVisits,
	})

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openPlanCache connects to Redis when REDIS_ADDR is set. Without it planning runs uncached.
func openPlanCache(ctx context.Context, cfg config.Config) (ports.PlanCache, func(), error) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, plan cache disabled")
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("open plan cache: ping redis %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("plan cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.PlanCacheTTL)
	return cache.NewRedisPlanCache(client, cfg.PlanCacheTTL), func() { _ = client.Close() }, nil
}
