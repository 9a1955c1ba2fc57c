package services

import (
	"slices"

	"showtime-itinerary-service/internal/domain"
)

// reconstruct walks predecessor links back from the terminal state and returns
// the visits in chronological order. End minutes strictly decrease along the
// walk, so it always reaches a first visit.
func reconstruct(p *problem, table [][]dpState, show, end int) *domain.Itinerary {
	visits := make([]domain.Visit, 0, 8)
	for show >= 0 {
		s := table[show][end]
		visits = append(visits, domain.Visit{
			Attraction: show,
			Start:      s.start,
			End:        end,
		})
		show, end = s.prevShow, s.prevEnd
	}
	slices.Reverse(visits)

	return scoreVisits(p, visits)
}

// scoreVisits prices each visit by the number of earlier visits to the same
// attraction and sums in chronological order, which is the order the planner
// accumulated them in.
func scoreVisits(p *problem, visits []domain.Visit) *domain.Itinerary {
	seen := make([]int, p.n)
	total := 0.0
	for i := range visits {
		a := visits[i].Attraction
		visits[i].Score = DecayedScore(p.scores[a], seen[a], p.decay)
		seen[a]++
		total += visits[i].Score
	}

	return &domain.Itinerary{Visits: visits, TotalScore: total}
}
