package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/platform/obs"
	"showtime-itinerary-service/internal/ports"
)

// SQLVenueRepository is a Postgres-backed implementation of the VenueRepository port.
type SQLVenueRepository struct {
	DB *sql.DB
}

func NewSQLVenueRepository(db *sql.DB) *SQLVenueRepository {
	return &SQLVenueRepository{DB: db}
}

// Return all venues ordered by id.
func (s *SQLVenueRepository) ListVenues(ctx context.Context) (_ []*domain.Venue, err error) {
	defer obs.Time(ctx, "venues.repo.ListVenues")(&err)

	if s.DB == nil {
		return nil, errors.New("venue repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT venue_id
	FROM venues
	ORDER BY venue_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list venues: query venues table: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list venues: scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list venues: row iteration: %w", err)
	}

	venues := make([]*domain.Venue, 0, len(ids))
	for _, id := range ids {
		v, err := s.GetVenue(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list venues: %w", err)
		}
		venues = append(venues, v)
	}

	return venues, nil
}

// Return one venue with its attractions and full distance matrix.
func (s *SQLVenueRepository) GetVenue(ctx context.Context, venueID string) (_ *domain.Venue, err error) {
	defer obs.Time(ctx, "venues.repo.GetVenue")(&err)

	if s.DB == nil {
		return nil, errors.New("venue repository: db is nil")
	}

	v := &domain.Venue{ID: venueID}
	err = s.DB.QueryRowContext(ctx, `
	SELECT name
	FROM venues
	WHERE venue_id = $1;
	`, venueID).Scan(&v.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get venue %q: %w", venueID, ports.ErrVenueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %q: query venues table: %w", venueID, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT idx, name, duration_minutes
	FROM attractions
	WHERE venue_id = $1
	ORDER BY idx;
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue %q: query attractions table: %w", venueID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Attraction
		if err := rows.Scan(&a.ID, &a.Name, &a.DurationMinutes); err != nil {
			return nil, fmt.Errorf("get venue %q: scan attraction: %w", venueID, err)
		}
		v.Attractions = append(v.Attractions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get venue %q: attraction iteration: %w", venueID, err)
	}

	n := len(v.Attractions)
	v.Distances = make(domain.DistanceMatrix, n)
	for i := range v.Distances {
		v.Distances[i] = make([]int, n)
	}

	drows, err := s.DB.QueryContext(ctx, `
	SELECT from_idx, to_idx, minutes
	FROM attraction_distances
	WHERE venue_id = $1;
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue %q: query attraction_distances table: %w", venueID, err)
	}
	defer drows.Close()

	for drows.Next() {
		var from, to, minutes int
		if err := drows.Scan(&from, &to, &minutes); err != nil {
			return nil, fmt.Errorf("get venue %q: scan distance: %w", venueID, err)
		}
		if from < 0 || from >= n || to < 0 || to >= n {
			return nil, fmt.Errorf("get venue %q: distance (%d,%d) references unknown attraction", venueID, from, to)
		}
		v.Distances[from][to] = minutes
	}
	if err := drows.Err(); err != nil {
		return nil, fmt.Errorf("get venue %q: distance iteration: %w", venueID, err)
	}

	return v, nil
}

// Return the showtimes of a venue on one date, indexed by attraction id.
func (s *SQLVenueRepository) ListShowtimes(
	ctx context.Context,
	venueID string,
	date time.Time,
) (_ domain.ShowtimeSet, err error) {
	defer obs.Time(ctx, "venues.repo.ListShowtimes")(&err)

	if s.DB == nil {
		return nil, errors.New("venue repository: db is nil")
	}

	var exists bool
	var n int
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		EXISTS (SELECT 1 FROM venues WHERE venue_id = $1),
		(SELECT count(*) FROM attractions WHERE venue_id = $1);
	`, venueID).Scan(&exists, &n)
	if err != nil {
		return nil, fmt.Errorf("list showtimes %q: query attraction count: %w", venueID, err)
	}
	if !exists {
		return nil, fmt.Errorf("list showtimes %q: %w", venueID, ports.ErrVenueNotFound)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT attraction_idx, start_minute
	FROM showtimes
	WHERE venue_id = $1
		AND show_date = $2::date
	ORDER BY attraction_idx, start_minute;
	`, venueID, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("list showtimes %q: query showtimes table: %w", venueID, err)
	}
	defer rows.Close()

	out := make(domain.ShowtimeSet, n)
	for rows.Next() {
		var idx, start int
		if err := rows.Scan(&idx, &start); err != nil {
			return nil, fmt.Errorf("list showtimes %q: scan row: %w", venueID, err)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("list showtimes %q: showtime references unknown attraction %d", venueID, idx)
		}
		out[idx] = append(out[idx], start)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list showtimes %q: row iteration: %w", venueID, err)
	}

	return out, nil
}
