package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"showtime-itinerary-service/internal/domain"
)

// Config holds the service settings read from the environment.
type Config struct {
	DatabaseURL string
	Port        string
	SeedPath    string

	// Redis plan cache; an empty address disables caching.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PlanCacheTTL  time.Duration

	// Planning defaults applied when a request leaves them unset.
	HorizonMinutes int
	DecayFactor    float64
	ExactMaxPaths  int
	ExactMaxVisits int
}

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration. Call godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   Get("DATABASE_URL", ""),
		Port:          Get("PORT", "8080"),
		SeedPath:      Get("SEED_PATH", "data/seeds/venues.json"),
		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: Get("REDIS_PASSWORD", ""),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(Get("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("load config: REDIS_DB: %w", err)
	}
	if cfg.PlanCacheTTL, err = time.ParseDuration(Get("PLAN_CACHE_TTL", "15m")); err != nil {
		return Config{}, fmt.Errorf("load config: PLAN_CACHE_TTL: %w", err)
	}
	if cfg.HorizonMinutes, err = strconv.Atoi(Get("HORIZON_MINUTES", strconv.Itoa(domain.MinutesPerDay))); err != nil {
		return Config{}, fmt.Errorf("load config: HORIZON_MINUTES: %w", err)
	}
	if cfg.DecayFactor, err = strconv.ParseFloat(Get("DECAY_FACTOR", "2"), 64); err != nil {
		return Config{}, fmt.Errorf("load config: DECAY_FACTOR: %w", err)
	}
	if cfg.ExactMaxPaths, err = strconv.Atoi(Get("EXACT_MAX_PATHS", "200000")); err != nil {
		return Config{}, fmt.Errorf("load config: EXACT_MAX_PATHS: %w", err)
	}
	if cfg.ExactMaxVisits, err = strconv.Atoi(Get("EXACT_MAX_VISITS", "0")); err != nil {
		return Config{}, fmt.Errorf("load config: EXACT_MAX_VISITS: %w", err)
	}

	if cfg.HorizonMinutes <= 0 || cfg.HorizonMinutes > domain.MinutesPerDay {
		return Config{}, fmt.Errorf("load config: HORIZON_MINUTES must be within 1..%d, got %d", domain.MinutesPerDay, cfg.HorizonMinutes)
	}
	if cfg.ExactMaxVisits < 0 {
		return Config{}, fmt.Errorf("load config: EXACT_MAX_VISITS must not be negative, got %d", cfg.ExactMaxVisits)
	}
	if cfg.DecayFactor <= 1 {
		return Config{}, fmt.Errorf("load config: DECAY_FACTOR must be > 1, got %v", cfg.DecayFactor)
	}

	return cfg, nil
}
