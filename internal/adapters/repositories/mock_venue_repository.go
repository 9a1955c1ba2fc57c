package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/ports"
)

// MockVenueRepository is an in-memory VenueRepository for tests and offline planning.
type MockVenueRepository struct {
	mu        sync.RWMutex
	venues    map[string]*domain.Venue
	showtimes map[string]domain.ShowtimeSet
}

func NewMockVenueRepository(venues ...*domain.Venue) *MockVenueRepository {
	m := &MockVenueRepository{
		venues:    make(map[string]*domain.Venue, len(venues)),
		showtimes: map[string]domain.ShowtimeSet{},
	}
	for _, v := range venues {
		m.venues[v.ID] = v
	}
	return m
}

func showtimeKey(venueID string, date time.Time) string {
	return venueID + "|" + date.Format(time.DateOnly)
}

// SetShowtimes replaces the showtimes of a venue for one date.
func (m *MockVenueRepository) SetShowtimes(venueID string, date time.Time, s domain.ShowtimeSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showtimes[showtimeKey(venueID, date)] = s
}

func (m *MockVenueRepository) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Venue, 0, len(m.venues))
	for _, v := range m.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockVenueRepository) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.venues[venueID]
	if !ok {
		return nil, fmt.Errorf("mock venue repository: %q: %w", venueID, ports.ErrVenueNotFound)
	}
	return v, nil
}

// ListShowtimes returns empty lists for every attraction on dates without data.
func (m *MockVenueRepository) ListShowtimes(ctx context.Context, venueID string, date time.Time) (domain.ShowtimeSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.venues[venueID]
	if !ok {
		return nil, fmt.Errorf("mock venue repository: %q: %w", venueID, ports.ErrVenueNotFound)
	}

	if s, ok := m.showtimes[showtimeKey(venueID, date)]; ok {
		return s, nil
	}
	return make(domain.ShowtimeSet, len(v.Attractions)), nil
}
