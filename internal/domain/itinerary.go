package domain

// Represents a single viewing in an itinerary.
// Score is the decayed preference this visit contributed to the itinerary total.
type Visit struct {
	Attraction int
	Start      int
	End        int
	Score      float64
}

// Represents the recommended plan for one day at a venue.
// Visits are in chronological order and TotalScore is the sum of their scores.
// An Itinerary is immutable planning output.
type Itinerary struct {
	Visits     []Visit
	TotalScore float64
}

// VisitCounts returns how many times each attraction appears in the itinerary.
func (it *Itinerary) VisitCounts() map[int]int {
	out := make(map[int]int, len(it.Visits))
	for _, v := range it.Visits {
		out[v.Attraction]++
	}
	return out
}
