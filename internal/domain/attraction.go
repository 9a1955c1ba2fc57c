package domain

// Represents a timed attraction at a venue.
// ID is the stable index of the attraction within its venue (0..N-1) and is the
// key used by the distance matrix and the showtime set.
type Attraction struct {
	ID              int
	Name            string
	DurationMinutes int
}
