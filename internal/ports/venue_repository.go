package ports

import (
	"context"
	"errors"
	"time"

	"showtime-itinerary-service/internal/domain"
)

// ErrVenueNotFound is returned by repositories for unknown venue ids.
var ErrVenueNotFound = errors.New("venue not found")

// Port: a boundary for retrieving venue catalogs and their published showtimes.
type VenueRepository interface {
	// Retrieve every venue with its attractions and distances.
	ListVenues(ctx context.Context) ([]*domain.Venue, error)

	// Retrieve one venue catalog.
	GetVenue(ctx context.Context, venueID string) (*domain.Venue, error)

	// Retrieve the showtimes published for a venue on a date, indexed by attraction id.
	ListShowtimes(ctx context.Context, venueID string, date time.Time) (domain.ShowtimeSet, error)
}
