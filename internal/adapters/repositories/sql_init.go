package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"showtime-itinerary-service/internal/domain"
)

// schemaStatements create the catalog tables. Showtimes reference their
// attraction so they cannot outlive a replaced catalog.
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS venues (
		venue_id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS attractions (
		venue_id TEXT NOT NULL REFERENCES venues(venue_id) ON DELETE CASCADE,
		idx INTEGER NOT NULL CHECK (idx >= 0),
		name TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes >= 0),
		PRIMARY KEY (venue_id, idx),
		UNIQUE (venue_id, name)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS attraction_distances (
		venue_id TEXT NOT NULL REFERENCES venues(venue_id) ON DELETE CASCADE,
		from_idx INTEGER NOT NULL,
		to_idx INTEGER NOT NULL,
		minutes INTEGER NOT NULL CHECK (minutes >= 0),
		PRIMARY KEY (venue_id, from_idx, to_idx)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS showtimes (
		venue_id TEXT NOT NULL,
		show_date DATE NOT NULL,
		attraction_idx INTEGER NOT NULL,
		start_minute INTEGER NOT NULL CHECK (start_minute BETWEEN 0 AND 1440),
		PRIMARY KEY (venue_id, show_date, attraction_idx, start_minute),
		FOREIGN KEY (venue_id, attraction_idx)
			REFERENCES attractions(venue_id, idx) ON DELETE CASCADE
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_showtimes_venue_date
	ON showtimes(venue_id, show_date);
	`,
}

// catalogResetQueries clear everything keyed by attraction index before a
// venue's attractions are rewritten. Showtimes of every date go too, since
// their indexes would point at different shows after a reorder.
var catalogResetQueries = []string{
	`DELETE FROM showtimes WHERE venue_id = $1;`,
	`DELETE FROM attraction_distances WHERE venue_id = $1;`,
	`DELETE FROM attractions WHERE venue_id = $1;`,
}

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type AttractionSeed struct {
	Name            string `json:"name" yaml:"name"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
}

type ShowtimeSeed struct {
	Date       string   `json:"date" yaml:"date"`
	Attraction string   `json:"attraction" yaml:"attraction"`
	Times      []string `json:"times" yaml:"times"`
}

// VenueSeed is the published form of a venue: attractions in a fixed order,
// walking minutes as an upper triangle and dated "HH:MM" showtimes.
type VenueSeed struct {
	VenueID     string           `json:"venue_id" yaml:"venue_id"`
	Name        string           `json:"name" yaml:"name"`
	Attractions []AttractionSeed `json:"attractions" yaml:"attractions"`
	Distances   [][]int          `json:"distances" yaml:"distances"`
	Showtimes   []ShowtimeSeed   `json:"showtimes" yaml:"showtimes"`
}

// DatedShowtimes are the showtimes of one venue on one date.
type DatedShowtimes struct {
	Date  time.Time
	Times domain.ShowtimeSet
}

// Venue converts the seed into a validated catalog.
func (s VenueSeed) Venue() (*domain.Venue, error) {
	id := strings.TrimSpace(s.VenueID)
	if id == "" {
		return nil, errors.New("venue seed: venue_id cannot be empty")
	}

	attractions := make([]domain.Attraction, 0, len(s.Attractions))
	for i, a := range s.Attractions {
		attractions = append(attractions, domain.Attraction{
			ID:              i,
			Name:            strings.TrimSpace(a.Name),
			DurationMinutes: a.DurationMinutes,
		})
	}

	distances, err := domain.NewDistanceMatrixFromUpperTriangle(len(attractions), s.Distances)
	if err != nil {
		return nil, fmt.Errorf("venue seed %q: %w", id, err)
	}

	v := &domain.Venue{
		ID:          id,
		Name:        strings.TrimSpace(s.Name),
		Attractions: attractions,
		Distances:   distances,
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("venue seed: %w", err)
	}

	return v, nil
}

// ShowtimesByDate groups the seed showtimes per date, indexed by attraction id.
func (s VenueSeed) ShowtimesByDate(v *domain.Venue) ([]DatedShowtimes, error) {
	index := v.AttractionIndex()
	byDate := map[string]*DatedShowtimes{}
	order := make([]string, 0, 4)

	for i, st := range s.Showtimes {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(st.Date))
		if err != nil {
			return nil, fmt.Errorf("venue seed %q: showtime entry %d: date: %w", v.ID, i+1, err)
		}

		idx, ok := index[strings.TrimSpace(st.Attraction)]
		if !ok {
			return nil, fmt.Errorf("venue seed %q: showtime entry %d: unknown attraction %q", v.ID, i+1, st.Attraction)
		}

		key := date.Format(time.DateOnly)
		d, ok := byDate[key]
		if !ok {
			d = &DatedShowtimes{Date: date, Times: make(domain.ShowtimeSet, len(v.Attractions))}
			byDate[key] = d
			order = append(order, key)
		}

		for _, raw := range st.Times {
			minute, err := domain.ParseClock(raw)
			if err != nil {
				return nil, fmt.Errorf("venue seed %q: showtime entry %d: %w", v.ID, i+1, err)
			}
			d.Times[idx] = append(d.Times[idx], minute)
		}
	}

	out := make([]DatedShowtimes, 0, len(order))
	for _, key := range order {
		d := byDate[key]
		out = append(out, DatedShowtimes{Date: d.Date, Times: d.Times.Normalized()})
	}
	return out, nil
}

// LoadVenueSeeds reads and parses a JSON list of venue seeds.
func LoadVenueSeeds(jsonPath string) ([]VenueSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load venue seeds: read %q: %w", jsonPath, err)
	}

	var data []VenueSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load venue seeds: parse json: %w", err)
	}

	return data, nil
}

// Populate the database with venue data from a JSON file.
// Each seeded venue replaces its attractions, distances and all of its showtimes.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed venues: DB is nil")
	}

	seeds, err := LoadVenueSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed venues: %w", err)
	}

	type prepared struct {
		venue     *domain.Venue
		showtimes []DatedShowtimes
	}

	rows := make([]prepared, 0, len(seeds))
	for i, seed := range seeds {
		v, err := seed.Venue()
		if err != nil {
			return fmt.Errorf("seed venues: item %d: %w", i+1, err)
		}
		st, err := seed.ShowtimesByDate(v)
		if err != nil {
			return fmt.Errorf("seed venues: item %d: %w", i+1, err)
		}
		rows = append(rows, prepared{venue: v, showtimes: st})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed venues: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range rows {
		if err := insertVenue(tx, r.venue); err != nil {
			return fmt.Errorf("seed venues: %w", err)
		}
		for _, d := range r.showtimes {
			if err := insertShowtimes(tx, r.venue.ID, d); err != nil {
				return fmt.Errorf("seed venues: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed venues: commit tx: %w", err)
	}

	return nil
}

func insertVenue(tx *sql.Tx, v *domain.Venue) error {
	if _, err := tx.Exec(`
	INSERT INTO venues (venue_id, name)
	VALUES ($1, $2)
	ON CONFLICT (venue_id) DO UPDATE
	SET name = EXCLUDED.name;
	`, v.ID, v.Name); err != nil {
		return fmt.Errorf("insert venue %q: %w", v.ID, err)
	}

	// Attraction order defines the ids, so the whole catalog is replaced.
	for _, q := range catalogResetQueries {
		if _, err := tx.Exec(q, v.ID); err != nil {
			return fmt.Errorf("insert venue %q: clear catalog: %w", v.ID, err)
		}
	}

	for _, a := range v.Attractions {
		if _, err := tx.Exec(`
		INSERT INTO attractions (venue_id, idx, name, duration_minutes)
		VALUES ($1, $2, $3, $4);
		`, v.ID, a.ID, a.Name, a.DurationMinutes); err != nil {
			return fmt.Errorf("insert venue %q: attraction %q: %w", v.ID, a.Name, err)
		}
	}

	stmt, err := tx.Prepare(`
	INSERT INTO attraction_distances (venue_id, from_idx, to_idx, minutes)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("insert venue %q: prepare distances: %w", v.ID, err)
	}
	defer stmt.Close()

	for i, row := range v.Distances {
		for j, minutes := range row {
			if i == j {
				continue
			}
			if _, err := stmt.Exec(v.ID, i, j, minutes); err != nil {
				return fmt.Errorf("insert venue %q: distance (%d,%d): %w", v.ID, i, j, err)
			}
		}
	}

	return nil
}

func insertShowtimes(tx *sql.Tx, venueID string, d DatedShowtimes) error {
	date := d.Date.Format(time.DateOnly)

	if _, err := tx.Exec(`
	DELETE FROM showtimes
	WHERE venue_id = $1
		AND show_date = $2::date;
	`, venueID, date); err != nil {
		return fmt.Errorf("insert showtimes %q %s: clear: %w", venueID, date, err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO showtimes (venue_id, show_date, attraction_idx, start_minute)
	VALUES ($1, $2::date, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("insert showtimes %q %s: prepare: %w", venueID, date, err)
	}
	defer stmt.Close()

	for idx, starts := range d.Times {
		for _, start := range starts {
			if _, err := stmt.Exec(venueID, date, idx, start); err != nil {
				return fmt.Errorf("insert showtimes %q %s: attraction %d at %d: %w", venueID, date, idx, start, err)
			}
		}
	}

	return nil
}
