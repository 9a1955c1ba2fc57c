package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URL", "PORT", "SEED_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"PLAN_CACHE_TTL", "HORIZON_MINUTES", "DECAY_FACTOR", "EXACT_MAX_PATHS", "EXACT_MAX_VISITS",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "data/seeds/venues.json", cfg.SeedPath)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, 15*time.Minute, cfg.PlanCacheTTL)
	require.Equal(t, 1440, cfg.HorizonMinutes)
	require.Equal(t, 2.0, cfg.DecayFactor)
	require.Equal(t, 200000, cfg.ExactMaxPaths)
	require.Zero(t, cfg.ExactMaxVisits)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", " 9090 ")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PLAN_CACHE_TTL", "1h")
	t.Setenv("DECAY_FACTOR", "3.5")
	t.Setenv("EXACT_MAX_VISITS", "6")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, time.Hour, cfg.PlanCacheTTL)
	require.Equal(t, 3.5, cfg.DecayFactor)
	require.Equal(t, 6, cfg.ExactMaxVisits)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "REDIS_DB", value: "one"},
		{key: "PLAN_CACHE_TTL", value: "soon"},
		{key: "HORIZON_MINUTES", value: "0"},
		{key: "HORIZON_MINUTES", value: "1441"},
		{key: "DECAY_FACTOR", value: "1"},
		{key: "EXACT_MAX_PATHS", value: "many"},
		{key: "EXACT_MAX_VISITS", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
