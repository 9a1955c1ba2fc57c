package dto

// ItineraryRequest mirrors the visitor's planning form.
// Times are "HH:MM"; the date is "YYYY-MM-DD" and defaults to today (UTC).
// MaxVisits caps the visits of an exact plan.
type ItineraryRequest struct {
	Date          string             `json:"date"`
	Scores        map[string]float64 `json:"scores"`
	BufferMinutes int                `json:"buffer_minutes"`
	BeginTime     string             `json:"begin_time"`
	EndTime       string             `json:"end_time"`
	DecayFactor   *float64           `json:"decay_factor"`
	Exact         bool               `json:"exact"`
	MaxVisits     *int               `json:"max_visits"`
}

type VisitResponse struct {
	AttractionID int     `json:"attraction_id"`
	Attraction   string  `json:"attraction"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Score        float64 `json:"score"`
}

type ItineraryResponse struct {
	VenueID    string          `json:"venue_id"`
	Date       string          `json:"date"`
	Visits     []VisitResponse `json:"visits"`
	TotalScore float64         `json:"total_score"`
	Schedule   []string        `json:"schedule"`
	Cached     bool            `json:"cached"`
}
