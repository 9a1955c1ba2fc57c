package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/platform/obs"
	"showtime-itinerary-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// PlanVisitRequest is a visitor's planning request for one day at one venue.
// Scores are keyed by attraction name; attractions without a score are worth 0.
type PlanVisitRequest struct {
	VenueID       string
	Date          time.Time
	Scores        map[string]float64
	BufferMinutes int
	Window        *domain.TimeWindow
	DecayFactor   float64
	Horizon       int
	Exact         bool
	MaxPaths      int
	MaxVisits     int
}

// PlannedVisit is the outcome of PlanVisit.
type PlannedVisit struct {
	Venue     *domain.Venue
	Itinerary *domain.Itinerary
	Schedule  []string
	Cached    bool
}

// PlanVisit loads the venue catalog and the day's showtimes, restricts them to
// the requested window and computes the best itinerary.
// The cache is optional; a failed cache write is logged and does not fail the request.
func PlanVisit(
	ctx context.Context,
	req PlanVisitRequest,
	repo ports.VenueRepository,
	cache ports.PlanCache,
) (_ *PlannedVisit, err error) {
	defer obs.Time(ctx, "services.PlanVisit")(&err)

	venueID := strings.TrimSpace(req.VenueID)
	if venueID == "" {
		return nil, fmt.Errorf("plan visit: %w: venue id must be non-empty", ErrInvalidInput)
	}

	if req.MaxVisits < 0 {
		return nil, fmt.Errorf("plan visit: %w: max visits must not be negative, got %d", ErrInvalidInput, req.MaxVisits)
	}

	window := domain.FullDay
	if req.Window != nil {
		window = *req.Window
	}
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("plan visit: %w: %v", ErrInvalidInput, err)
	}

	var (
		venue     *domain.Venue
		showtimes domain.ShowtimeSet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := repo.GetVenue(gctx, venueID)
		if err != nil {
			return fmt.Errorf("get venue %q: %w", venueID, err)
		}
		venue = v
		return nil
	})
	g.Go(func() error {
		s, err := repo.ListShowtimes(gctx, venueID, req.Date)
		if err != nil {
			return fmt.Errorf("list showtimes for %q on %s: %w", venueID, req.Date.Format(time.DateOnly), err)
		}
		showtimes = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan visit: %w", err)
	}

	if err := venue.Validate(); err != nil {
		return nil, fmt.Errorf("plan visit: %w", err)
	}
	if len(showtimes) != len(venue.Attractions) {
		return nil, fmt.Errorf(
			"plan visit: venue %q has %d attractions but %d showtime lists",
			venueID, len(venue.Attractions), len(showtimes),
		)
	}

	scores, err := ScoresByAttraction(venue, req.Scores)
	if err != nil {
		return nil, fmt.Errorf("plan visit: %w", err)
	}

	horizon := req.Horizon
	if horizon == 0 {
		horizon = domain.MinutesPerDay
	}

	in := PlanInput{
		Durations:     venue.Durations(),
		Scores:        scores,
		Distances:     venue.Distances,
		Showtimes:     showtimes.Window(window),
		BufferMinutes: req.BufferMinutes,
		DecayFactor:   req.DecayFactor,
		Horizon:       horizon,
	}
	opts := PlanOptions{Exact: req.Exact, MaxPaths: req.MaxPaths, MaxVisits: req.MaxVisits}

	key := PlanKey(venueID, in, opts)
	if cache != nil {
		it, ok, err := cache.Get(ctx, key)
		if err != nil {
			log.Printf("plan cache read failed: key=%s err=%v", key, err)
		} else if ok {
			return &PlannedVisit{Venue: venue, Itinerary: it, Schedule: FormatSchedule(venue, it), Cached: true}, nil
		}
	}

	it, err := PlanItinerary(in, opts)
	if err != nil {
		return nil, fmt.Errorf("plan visit: venue %q: %w", venueID, err)
	}

	if cache != nil {
		if err := cache.Put(ctx, key, it); err != nil {
			log.Printf("plan cache write failed: key=%s err=%v", key, err)
		}
	}

	return &PlannedVisit{Venue: venue, Itinerary: it, Schedule: FormatSchedule(venue, it)}, nil
}

// ScoresByAttraction turns name keyed preferences into a slice indexed by attraction id.
func ScoresByAttraction(venue *domain.Venue, byName map[string]float64) ([]float64, error) {
	if venue == nil {
		return nil, errors.New("scores by attraction: venue is nil")
	}

	index := venue.AttractionIndex()
	scores := make([]float64, len(venue.Attractions))
	for name, score := range byName {
		id, ok := index[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown attraction %q", ErrInvalidInput, name)
		}
		scores[id] = score
	}

	return scores, nil
}
