package repositories

import (
	"context"
	"testing"
	"time"

	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/ports"

	"github.com/stretchr/testify/require"
)

func TestMockVenueRepository(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	park := &domain.Venue{ID: "park", Attractions: []domain.Attraction{{ID: 0, Name: "A"}}}
	zoo := &domain.Venue{ID: "zoo"}
	repo := NewMockVenueRepository(zoo, park)

	venues, err := repo.ListVenues(ctx)
	require.NoError(t, err)
	require.Equal(t, []*domain.Venue{park, zoo}, venues)

	got, err := repo.GetVenue(ctx, "park")
	require.NoError(t, err)
	require.Same(t, park, got)

	_, err = repo.GetVenue(ctx, "museum")
	require.ErrorIs(t, err, ports.ErrVenueNotFound)

	st, err := repo.ListShowtimes(ctx, "park", date)
	require.NoError(t, err)
	require.Equal(t, domain.ShowtimeSet{nil}, st)

	repo.SetShowtimes("park", date, domain.ShowtimeSet{{600}})
	st, err = repo.ListShowtimes(ctx, "park", date.Add(3*time.Hour))
	require.NoError(t, err)
	require.Equal(t, domain.ShowtimeSet{{600}}, st)

	_, err = repo.ListShowtimes(ctx, "museum", date)
	require.ErrorIs(t, err, ports.ErrVenueNotFound)
}
