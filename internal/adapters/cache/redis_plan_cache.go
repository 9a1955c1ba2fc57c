package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

type cachedVisit struct {
	Attraction int     `json:"attraction"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

type cachedItinerary struct {
	Visits     []cachedVisit `json:"visits"`
	TotalScore float64       `json:"total_score"`
}

// RedisPlanCache is a Redis-backed cache of computed itineraries.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// Fetch a cached itinerary; a missing key is not an error.
func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ *domain.Itinerary, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	var ci cachedItinerary
	if err := json.Unmarshal(b, &ci); err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: decode: %w", key, err)
	}

	it := &domain.Itinerary{
		Visits:     make([]domain.Visit, 0, len(ci.Visits)),
		TotalScore: ci.TotalScore,
	}
	for _, v := range ci.Visits {
		it.Visits = append(it.Visits, domain.Visit{
			Attraction: v.Attraction,
			Start:      v.Start,
			End:        v.End,
			Score:      v.Score,
		})
	}

	return it, true, nil
}

// Store an itinerary under key.
func (c *RedisPlanCache) Put(ctx context.Context, key string, it *domain.Itinerary) error {
	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if it == nil {
		return errors.New("insert plan cache: itinerary is nil")
	}

	ci := cachedItinerary{
		Visits:     make([]cachedVisit, 0, len(it.Visits)),
		TotalScore: it.TotalScore,
	}
	for _, v := range it.Visits {
		ci.Visits = append(ci.Visits, cachedVisit{
			Attraction: v.Attraction,
			Start:      v.Start,
			End:        v.End,
			Score:      v.Score,
		})
	}

	b, err := json.Marshal(ci)
	if err != nil {
		return fmt.Errorf("insert plan cache key=%q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}
