package services

import (
	"fmt"

	"showtime-itinerary-service/internal/domain"
)

// FormatSchedule renders an itinerary as human readable lines, one per visit,
// with a walking line between consecutive visits.
func FormatSchedule(venue *domain.Venue, it *domain.Itinerary) []string {
	if it == nil || len(it.Visits) == 0 {
		return []string{}
	}

	lines := make([]string, 0, 2*len(it.Visits)-1)
	for i, v := range it.Visits {
		lines = append(lines, fmt.Sprintf(
			"Watch %s from %s-%s",
			venue.Attractions[v.Attraction].Name, domain.FormatClock(v.Start), domain.FormatClock(v.End),
		))

		if i == len(it.Visits)-1 {
			break
		}
		next := it.Visits[i+1].Attraction
		lines = append(lines, fmt.Sprintf(
			"Walk to %s (%d mins)",
			venue.Attractions[next].Name, venue.Distances.Travel(v.Attraction, next),
		))
	}

	return lines
}
