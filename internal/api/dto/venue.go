package dto

type AttractionResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

type VenueResponse struct {
	VenueID     string               `json:"venue_id"`
	Name        string               `json:"name"`
	Attractions []AttractionResponse `json:"attractions"`
	Distances   [][]int              `json:"distances"`
}

type ListVenuesResponse struct {
	Venues []VenueResponse `json:"venues"`
}

type AttractionShowtimes struct {
	AttractionID int      `json:"attraction_id"`
	Attraction   string   `json:"attraction"`
	Times        []string `json:"times"`
}

type ShowtimesResponse struct {
	VenueID   string                `json:"venue_id"`
	Date      string                `json:"date"`
	Showtimes []AttractionShowtimes `json:"showtimes"`
}
