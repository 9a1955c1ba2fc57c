package services

import (
	"slices"

	"showtime-itinerary-service/internal/domain"
)

// dpState is the best known itinerary prefix finishing a showing of one
// attraction at one minute.
type dpState struct {
	reached bool
	score   float64
	start   int

	// predecessor state; prevShow is -1 for a first visit
	prevShow int
	prevEnd  int

	// visits per attraction along the winning prefix, this visit included
	counts []int
}

// PlanItinerary computes the visit sequence with the highest total decayed
// preference score.
//
// By default it runs a time-indexed dynamic program over (attraction, end minute)
// states. Each state keeps only its best-scoring prefix together with that
// prefix's visit counts, and repeat visits are priced from those counts. This is
// polynomial in attractions × horizon × showtimes but can miss an itinerary whose
// better future depends on a lower-scoring history at the same state. For the
// same reason a larger decay factor can occasionally raise its total.
// opts.Exact switches to bounded exhaustive enumeration, which has no such gap:
// its total never increases as the decay factor grows.
//
// Ties are deterministic: the sweep visits end minutes ascending, then
// attractions, next attractions and next starts ascending, and only a strictly
// better score replaces a recorded one. The winning terminal state is the first
// maximum found scanning end minute ascending, then attraction ascending.
func PlanItinerary(in PlanInput, opts PlanOptions) (*domain.Itinerary, error) {
	p, err := newProblem(in)
	if err != nil {
		return nil, err
	}

	if opts.Exact {
		return planExact(p, opts)
	}
	return planCollapsed(p), nil
}

func planCollapsed(p *problem) *domain.Itinerary {
	table := make([][]dpState, p.n)
	for a := range table {
		table[a] = make([]dpState, p.lastEnd+1)
	}

	// First visits are worth their full score and have no predecessor.
	for _, a := range p.usable {
		for _, start := range p.starts[a] {
			counts := make([]int, p.n)
			counts[a] = 1
			table[a][start+p.durations[a]] = dpState{
				reached:  true,
				score:    p.scores[a],
				start:    start,
				prevShow: -1,
				counts:   counts,
			}
		}
	}

	// Transitions only write to strictly later end minutes, so every state is
	// final by the time the sweep reaches it.
	for t := 0; t <= p.lastEnd; t++ {
		for _, a := range p.usable {
			cur := &table[a][t]
			if !cur.reached {
				continue
			}

			for _, next := range p.usable {
				gain := DecayedScore(p.scores[next], cur.counts[next], p.decay)
				candidate := cur.score + gain

				for _, start := range p.startsFrom(next, p.earliestStart(a, next, t)) {
					dst := &table[next][start+p.durations[next]]
					if dst.reached && candidate <= dst.score {
						continue
					}

					counts := slices.Clone(cur.counts)
					counts[next]++
					*dst = dpState{
						reached:  true,
						score:    candidate,
						start:    start,
						prevShow: a,
						prevEnd:  t,
						counts:   counts,
					}
				}
			}
		}
	}

	bestShow, bestEnd := -1, -1
	for t := 0; t <= p.lastEnd; t++ {
		for a := 0; a < p.n; a++ {
			s := &table[a][t]
			if !s.reached {
				continue
			}
			if bestShow < 0 || s.score > table[bestShow][bestEnd].score {
				bestShow, bestEnd = a, t
			}
		}
	}

	return reconstruct(p, table, bestShow, bestEnd)
}
