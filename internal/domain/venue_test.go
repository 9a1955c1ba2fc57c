package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testVenue() *Venue {
	return &Venue{
		ID:   "park",
		Name: "Park",
		Attractions: []Attraction{
			{ID: 0, Name: "Vikings", DurationMinutes: 26},
			{ID: 1, Name: "Birds", DurationMinutes: 33},
		},
		Distances: DistanceMatrix{{0, 5}, {5, 0}},
	}
}

func TestVenueValidate(t *testing.T) {
	v := testVenue()
	require.NoError(t, v.Validate())
	require.Equal(t, []int{26, 33}, v.Durations())
	require.Equal(t, map[string]int{"Vikings": 0, "Birds": 1}, v.AttractionIndex())

	dup := testVenue()
	dup.Attractions[1].Name = "Vikings"
	require.Error(t, dup.Validate())

	gap := testVenue()
	gap.Attractions[1].ID = 5
	require.Error(t, gap.Validate())

	neg := testVenue()
	neg.Attractions[0].DurationMinutes = -1
	require.Error(t, neg.Validate())

	short := testVenue()
	short.Distances = DistanceMatrix{{0}}
	require.Error(t, short.Validate())
}
