package services

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"showtime-itinerary-service/internal/domain"
)

// DefaultExactMaxPaths bounds exact planning when PlanOptions.MaxPaths is unset.
const DefaultExactMaxPaths = 200_000

// PlanInput is everything the itinerary engine needs for one planning run.
// Showtimes are expected to be already restricted to the requested window.
type PlanInput struct {
	Durations     []int
	Scores        []float64
	Distances     domain.DistanceMatrix
	Showtimes     domain.ShowtimeSet
	BufferMinutes int
	DecayFactor   float64
	Horizon       int
}

// PlanOptions selects the search strategy.
//
// The default collapses every (attraction, end time) state to its best-scoring
// prefix and extends only that prefix. Exact enumerates every feasible visit
// sequence instead, bounded by MaxPaths. A positive MaxVisits caps the number
// of visits per itinerary in exact mode.
type PlanOptions struct {
	Exact     bool
	MaxPaths  int
	MaxVisits int
}

// problem is a validated PlanInput with unusable showtimes removed.
type problem struct {
	n         int
	durations []int
	scores    []float64
	distances domain.DistanceMatrix
	starts    [][]int
	usable    []int
	lastEnd   int
	buffer    int
	decay     float64
	horizon   int
}

func newProblem(in PlanInput) (*problem, error) {
	n := len(in.Durations)

	if len(in.Scores) != n {
		return nil, fmt.Errorf("%w: %d scores for %d attractions", ErrInvalidInput, len(in.Scores), n)
	}
	if len(in.Showtimes) != n {
		return nil, fmt.Errorf("%w: showtimes for %d attractions, want %d", ErrInvalidInput, len(in.Showtimes), n)
	}
	if err := in.Distances.Validate(n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.BufferMinutes < 0 {
		return nil, fmt.Errorf("%w: negative buffer %d", ErrInvalidInput, in.BufferMinutes)
	}
	if !(in.DecayFactor > 1) || math.IsInf(in.DecayFactor, 0) {
		return nil, fmt.Errorf("%w: decay factor must be a finite value > 1, got %v", ErrInvalidInput, in.DecayFactor)
	}
	if in.Horizon <= 0 || in.Horizon > domain.MinutesPerDay {
		return nil, fmt.Errorf("%w: horizon must be within 1..%d minutes, got %d", ErrInvalidInput, domain.MinutesPerDay, in.Horizon)
	}

	for i := 0; i < n; i++ {
		if in.Durations[i] < 0 {
			return nil, fmt.Errorf("%w: attraction %d has negative duration %d", ErrInvalidInput, i, in.Durations[i])
		}
		s := in.Scores[i]
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: attraction %d has invalid score %v", ErrInvalidInput, i, s)
		}
		for _, start := range in.Showtimes[i] {
			if start < 0 {
				return nil, fmt.Errorf("%w: attraction %d has negative start minute %d", ErrInvalidInput, i, start)
			}
		}
	}

	p := &problem{
		n:         n,
		durations: slices.Clone(in.Durations),
		scores:    slices.Clone(in.Scores),
		distances: in.Distances,
		starts:    make([][]int, n),
		buffer:    in.BufferMinutes,
		decay:     in.DecayFactor,
		horizon:   in.Horizon,
	}

	for i, starts := range in.Showtimes.Normalized() {
		kept := make([]int, 0, len(starts))
		for _, start := range starts {
			if start > p.horizon || p.durations[i] > p.horizon-start {
				continue
			}
			end := start + p.durations[i]
			kept = append(kept, start)
			p.lastEnd = max(p.lastEnd, end)
		}
		p.starts[i] = kept
		if len(kept) > 0 {
			p.usable = append(p.usable, i)
		}
	}

	if len(p.usable) == 0 {
		return nil, fmt.Errorf("%w: no attraction has a showtime ending within %d minutes", ErrNoFeasibleSchedule, p.horizon)
	}

	return p, nil
}

// earliestStart is the first minute a showing of next may start after a visit
// to from ending at end. Starts must be strictly after end so that end times
// grow along every chain.
func (p *problem) earliestStart(from, next, end int) int {
	earliest := end + p.distances.Travel(from, next) + p.buffer
	if earliest <= end {
		earliest = end + 1
	}
	return earliest
}

// startsFrom returns the showtimes of attraction a at or after minute.
func (p *problem) startsFrom(a, minute int) []int {
	starts := p.starts[a]
	return starts[sort.SearchInts(starts, minute):]
}
