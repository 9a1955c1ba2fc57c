package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"showtime-itinerary-service/internal/adapters/repositories"
	"showtime-itinerary-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// VenueFile is a venue catalog together with its dated showtimes.
type VenueFile struct {
	Venue     *domain.Venue
	Showtimes []repositories.DatedShowtimes
}

// LoadVenueFile reads a YAML venue file. It has the same shape as one entry
// of the JSON seed file used by dbtool.
func LoadVenueFile(path string) (*VenueFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load venue file: read %q: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var seed repositories.VenueSeed
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("load venue file %q: file is empty", path)
		}
		return nil, fmt.Errorf("load venue file %q: parse yaml: %w", path, err)
	}

	venue, err := seed.Venue()
	if err != nil {
		return nil, fmt.Errorf("load venue file %q: %w", path, err)
	}
	showtimes, err := seed.ShowtimesByDate(venue)
	if err != nil {
		return nil, fmt.Errorf("load venue file %q: %w", path, err)
	}

	return &VenueFile{Venue: venue, Showtimes: showtimes}, nil
}

// Repository exposes the file through the VenueRepository port.
func (f *VenueFile) Repository() *repositories.MockVenueRepository {
	repo := repositories.NewMockVenueRepository(f.Venue)
	for _, d := range f.Showtimes {
		repo.SetShowtimes(f.Venue.ID, d.Date, d.Times)
	}
	return repo
}

// ShowCount is the number of showtimes over all dates.
func (f *VenueFile) ShowCount() int {
	n := 0
	for _, d := range f.Showtimes {
		n += d.Times.Count()
	}
	return n
}
