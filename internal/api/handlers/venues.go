package handlers

import (
	"net/http"
	"strings"
	"time"

	"showtime-itinerary-service/internal/api/dto"
	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/ports"

	"github.com/gorilla/mux"
)

// VenueHandler serves the venue catalog and its daily showtimes.
type VenueHandler struct {
	Repo ports.VenueRepository
	Now  func() time.Time
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Repo.ListVenues(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListVenuesResponse{Venues: make([]dto.VenueResponse, 0, len(venues))}
	for _, v := range venues {
		res.Venues = append(res.Venues, toVenueResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	venue, err := h.Repo.GetVenue(r.Context(), mux.Vars(r)["venueID"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toVenueResponse(venue))
}

// Showtimes lists the start times of every attraction on ?date=YYYY-MM-DD (default today).
func (h *VenueHandler) Showtimes(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueID"]

	date, err := parseDate(r.URL.Query().Get("date"), h.Now)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	venue, err := h.Repo.GetVenue(r.Context(), venueID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	showtimes, err := h.Repo.ListShowtimes(r.Context(), venueID, date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ShowtimesResponse{
		VenueID:   venue.ID,
		Date:      date.Format(time.DateOnly),
		Showtimes: make([]dto.AttractionShowtimes, 0, len(venue.Attractions)),
	}
	for _, a := range venue.Attractions {
		times := []string{}
		if a.ID < len(showtimes) {
			for _, m := range showtimes[a.ID] {
				times = append(times, domain.FormatClock(m))
			}
		}
		res.Showtimes = append(res.Showtimes, dto.AttractionShowtimes{
			AttractionID: a.ID,
			Attraction:   a.Name,
			Times:        times,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toVenueResponse(v *domain.Venue) dto.VenueResponse {
	res := dto.VenueResponse{
		VenueID:     v.ID,
		Name:        v.Name,
		Attractions: make([]dto.AttractionResponse, 0, len(v.Attractions)),
		Distances:   v.Distances,
	}
	for _, a := range v.Attractions {
		res.Attractions = append(res.Attractions, dto.AttractionResponse{
			ID:              a.ID,
			Name:            a.Name,
			DurationMinutes: a.DurationMinutes,
		})
	}
	return res
}

// parseDate reads a YYYY-MM-DD date, falling back to today's UTC date when raw is blank.
func parseDate(raw string, now func() time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if now == nil {
			now = time.Now
		}
		y, m, d := now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return date, nil
}
