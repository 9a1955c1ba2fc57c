package ports

import (
	"context"

	"showtime-itinerary-service/internal/domain"
)

// Contract for storing computed itineraries keyed by their planning input.
type PlanCache interface {
	// Return the cached itinerary and whether the key was present.
	Get(ctx context.Context, key string) (*domain.Itinerary, bool, error)
	// Store an itinerary under key.
	Put(ctx context.Context, key string, itinerary *domain.Itinerary) error
}
