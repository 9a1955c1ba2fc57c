package services

import (
	"fmt"
	"slices"

	"showtime-itinerary-service/internal/domain"
)

// exactSearch enumerates every feasible visit sequence depth first.
// Every prefix is itself a complete itinerary and counts against maxPaths.
type exactSearch struct {
	p         *problem
	maxPaths  int
	maxVisits int
	paths     int

	path   []domain.Visit
	counts []int
	score  float64

	best      []domain.Visit
	bestScore float64
	found     bool
}

// planExact scores every path independently. Among equal scores the itinerary
// ending earliest wins, then the lower terminal attraction, then the first found.
func planExact(p *problem, opts PlanOptions) (*domain.Itinerary, error) {
	maxPaths := opts.MaxPaths
	if maxPaths <= 0 {
		maxPaths = DefaultExactMaxPaths
	}

	s := &exactSearch{
		p:         p,
		maxPaths:  maxPaths,
		maxVisits: opts.MaxVisits,
		counts:    make([]int, p.n),
	}

	for _, a := range p.usable {
		for _, start := range p.starts[a] {
			if err := s.visit(a, start); err != nil {
				return nil, err
			}
		}
	}

	return scoreVisits(p, s.best), nil
}

func (s *exactSearch) visit(a, start int) error {
	s.paths++
	if s.paths > s.maxPaths {
		return fmt.Errorf("%w: more than %d itineraries", ErrStateSpaceExceeded, s.maxPaths)
	}

	end := start + s.p.durations[a]
	gain := DecayedScore(s.p.scores[a], s.counts[a], s.p.decay)

	prevScore := s.score
	s.score += gain
	s.counts[a]++
	s.path = append(s.path, domain.Visit{Attraction: a, Start: start, End: end})
	defer func() {
		s.path = s.path[:len(s.path)-1]
		s.counts[a]--
		s.score = prevScore
	}()

	if s.better(a, end) {
		s.best = slices.Clone(s.path)
		s.bestScore = s.score
		s.found = true
	}

	if s.maxVisits > 0 && len(s.path) >= s.maxVisits {
		return nil
	}

	for _, next := range s.p.usable {
		for _, nextStart := range s.p.startsFrom(next, s.p.earliestStart(a, next, end)) {
			if err := s.visit(next, nextStart); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *exactSearch) better(a, end int) bool {
	if !s.found || s.score > s.bestScore {
		return true
	}
	if s.score < s.bestScore {
		return false
	}

	last := s.best[len(s.best)-1]
	if end != last.End {
		return end < last.End
	}
	return a < last.Attraction
}
