package services

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PlanKey derives a stable cache key from everything that influences the result.
func PlanKey(venueID string, in PlanInput, opts PlanOptions) string {
	d := xxhash.New()

	fmt.Fprintf(d, "venue=%s;", venueID)
	fmt.Fprintf(d, "durations=%v;scores=%v;", in.Durations, in.Scores)
	fmt.Fprintf(d, "distances=%v;showtimes=%v;", in.Distances, in.Showtimes.Normalized())
	fmt.Fprintf(d, "buffer=%d;decay=%v;horizon=%d;", in.BufferMinutes, in.DecayFactor, in.Horizon)
	fmt.Fprintf(d, "exact=%t;max_paths=%d;max_visits=%d", opts.Exact, opts.MaxPaths, opts.MaxVisits)

	return fmt.Sprintf("itinerary:v1:%016x", d.Sum64())
}
