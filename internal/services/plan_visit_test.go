package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"showtime-itinerary-service/internal/adapters/repositories"
	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/ports"

	"github.com/stretchr/testify/require"
)

type memoryPlanCache struct {
	items  map[string]*domain.Itinerary
	puts   int
	getErr error
}

func newMemoryPlanCache() *memoryPlanCache {
	return &memoryPlanCache{items: map[string]*domain.Itinerary{}}
}

func (c *memoryPlanCache) Get(ctx context.Context, key string) (*domain.Itinerary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	it, ok := c.items[key]
	return it, ok, nil
}

func (c *memoryPlanCache) Put(ctx context.Context, key string, it *domain.Itinerary) error {
	c.puts++
	c.items[key] = it
	return nil
}

var planDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func newParkRepository() *repositories.MockVenueRepository {
	venue := &domain.Venue{
		ID:   "park",
		Name: "Park",
		Attractions: []domain.Attraction{
			{ID: 0, Name: "Triumph", DurationMinutes: 30},
			{ID: 1, Name: "Vikings", DurationMinutes: 20},
		},
		Distances: domain.DistanceMatrix{{0, 10}, {10, 0}},
	}

	repo := repositories.NewMockVenueRepository(venue)
	repo.SetShowtimes("park", planDate, domain.ShowtimeSet{{600, 700}, {640, 690}})
	return repo
}

func parkRequest() PlanVisitRequest {
	return PlanVisitRequest{
		VenueID:       "park",
		Date:          planDate,
		Scores:        map[string]float64{"Triumph": 5, "Vikings": 3},
		BufferMinutes: 5,
		DecayFactor:   2,
	}
}

func TestPlanVisit(t *testing.T) {
	repo := newParkRepository()
	cache := newMemoryPlanCache()

	got, err := PlanVisit(context.Background(), parkRequest(), repo, cache)
	require.NoError(t, err)
	require.False(t, got.Cached)

	require.Equal(t, []domain.Visit{
		{Attraction: 0, Start: 600, End: 630, Score: 5},
		{Attraction: 1, Start: 690, End: 710, Score: 3},
	}, got.Itinerary.Visits)
	require.Equal(t, []string{
		"Watch Triumph from 10:00-10:30",
		"Walk to Vikings (10 mins)",
		"Watch Vikings from 11:30-11:50",
	}, got.Schedule)
	require.Equal(t, 1, cache.puts)

	again, err := PlanVisit(context.Background(), parkRequest(), repo, cache)
	require.NoError(t, err)
	require.True(t, again.Cached)
	require.Equal(t, got.Itinerary, again.Itinerary)
	require.Equal(t, 1, cache.puts)
}

func TestPlanVisitWithoutCache(t *testing.T) {
	got, err := PlanVisit(context.Background(), parkRequest(), newParkRepository(), nil)
	require.NoError(t, err)
	require.Equal(t, 8.0, got.Itinerary.TotalScore)
}

func TestPlanVisitCacheReadFailureFallsBackToPlanning(t *testing.T) {
	cache := newMemoryPlanCache()
	cache.getErr = errors.New("connection refused")

	got, err := PlanVisit(context.Background(), parkRequest(), newParkRepository(), cache)
	require.NoError(t, err)
	require.False(t, got.Cached)
	require.Len(t, got.Itinerary.Visits, 2)
}

func TestPlanVisitWindow(t *testing.T) {
	req := parkRequest()
	req.Window = &domain.TimeWindow{Begin: 650, End: 720}

	got, err := PlanVisit(context.Background(), req, newParkRepository(), nil)
	require.NoError(t, err)
	require.Equal(t, []domain.Visit{
		{Attraction: 0, Start: 700, End: 730, Score: 5},
	}, got.Itinerary.Visits)

	req.Window = &domain.TimeWindow{Begin: 800, End: 900}
	_, err = PlanVisit(context.Background(), req, newParkRepository(), nil)
	require.ErrorIs(t, err, ErrNoFeasibleSchedule)

	req.Window = &domain.TimeWindow{Begin: 900, End: 800}
	_, err = PlanVisit(context.Background(), req, newParkRepository(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlanVisitErrors(t *testing.T) {
	repo := newParkRepository()

	req := parkRequest()
	req.VenueID = "zoo"
	_, err := PlanVisit(context.Background(), req, repo, nil)
	require.ErrorIs(t, err, ports.ErrVenueNotFound)

	req = parkRequest()
	req.Scores = map[string]float64{"Dragons": 1}
	_, err = PlanVisit(context.Background(), req, repo, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = parkRequest()
	req.DecayFactor = 1
	_, err = PlanVisit(context.Background(), req, repo, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = parkRequest()
	req.MaxVisits = -1
	_, err = PlanVisit(context.Background(), req, repo, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = parkRequest()
	req.Horizon = domain.MinutesPerDay + 1
	_, err = PlanVisit(context.Background(), req, repo, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	req = parkRequest()
	req.Date = planDate.AddDate(0, 0, 1)
	_, err = PlanVisit(context.Background(), req, repo, nil)
	require.ErrorIs(t, err, ErrNoFeasibleSchedule)
}

func TestPlanVisitExactMaxVisits(t *testing.T) {
	req := parkRequest()
	req.Exact = true
	req.MaxVisits = 1

	got, err := PlanVisit(context.Background(), req, newParkRepository(), nil)
	require.NoError(t, err)
	require.Equal(t, []domain.Visit{
		{Attraction: 0, Start: 600, End: 630, Score: 5},
	}, got.Itinerary.Visits)
}

func TestPlanKey(t *testing.T) {
	in := twoAttractionInput()
	key := PlanKey("park", in, PlanOptions{})

	require.Equal(t, key, PlanKey("park", twoAttractionInput(), PlanOptions{}))
	require.Regexp(t, `^itinerary:v1:[0-9a-f]{16}$`, key)

	require.NotEqual(t, key, PlanKey("zoo", in, PlanOptions{}))
	require.NotEqual(t, key, PlanKey("park", in, PlanOptions{Exact: true}))

	in.BufferMinutes = 6
	require.NotEqual(t, key, PlanKey("park", in, PlanOptions{}))
}

func TestFormatSchedule(t *testing.T) {
	venue := &domain.Venue{
		Attractions: []domain.Attraction{{ID: 0, Name: "A"}, {ID: 1, Name: "B"}},
		Distances:   domain.DistanceMatrix{{0, 7}, {7, 0}},
	}

	require.Empty(t, FormatSchedule(venue, &domain.Itinerary{}))
	require.Equal(t, []string{
		"Watch A from 09:00-09:30",
		"Walk to A (0 mins)",
		"Watch A from 09:40-10:10",
		"Walk to B (7 mins)",
		"Watch B from 10:20-10:45",
	}, FormatSchedule(venue, &domain.Itinerary{Visits: []domain.Visit{
		{Attraction: 0, Start: 540, End: 570},
		{Attraction: 0, Start: 580, End: 610},
		{Attraction: 1, Start: 620, End: 645},
	}}))
}
