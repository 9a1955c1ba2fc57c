package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Venue is the immutable catalog a planning run works against: the attractions,
// their fixed durations and the walking times between them.
// It is loaded per request and never mutated by the planner.
type Venue struct {
	ID          string
	Name        string
	Attractions []Attraction
	Distances   DistanceMatrix
}

// Validate checks the catalog invariants: dense attraction ids, unique names,
// non-negative durations and a distance matrix covering every pair.
func (v *Venue) Validate() error {
	if v == nil {
		return errors.New("validate venue: venue is nil")
	}

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("validate venue: id must be non-empty")
	}

	names := make(map[string]struct{}, len(v.Attractions))
	for i, a := range v.Attractions {
		if a.ID != i {
			return fmt.Errorf("validate venue %q: attraction at position %d has id %d", v.ID, i, a.ID)
		}

		name := strings.TrimSpace(a.Name)
		if name == "" {
			return fmt.Errorf("validate venue %q: attraction %d has empty name", v.ID, i)
		}
		if _, ok := names[name]; ok {
			return fmt.Errorf("validate venue %q: duplicate attraction name %q", v.ID, name)
		}
		names[name] = struct{}{}

		if a.DurationMinutes < 0 {
			return fmt.Errorf("validate venue %q: attraction %q has negative duration %d", v.ID, name, a.DurationMinutes)
		}
	}

	if err := v.Distances.Validate(len(v.Attractions)); err != nil {
		return fmt.Errorf("validate venue %q: %w", v.ID, err)
	}

	return nil
}

// Durations returns the attraction durations indexed by attraction id.
func (v *Venue) Durations() []int {
	out := make([]int, len(v.Attractions))
	for i, a := range v.Attractions {
		out[i] = a.DurationMinutes
	}
	return out
}

// AttractionIndex maps attraction names to their ids.
func (v *Venue) AttractionIndex() map[string]int {
	out := make(map[string]int, len(v.Attractions))
	for _, a := range v.Attractions {
		out[a.Name] = a.ID
	}
	return out
}
