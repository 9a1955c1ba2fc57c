package api

import (
	"net/http"

	"showtime-itinerary-service/internal/api/handlers"
	"showtime-itinerary-service/internal/ports"

	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// cache may be nil, which disables plan caching. The middleware wraps the whole
// router so unmatched routes are logged and tagged too.
func NewRouter(repo ports.VenueRepository, cache ports.PlanCache, defaults handlers.PlanDefaults) http.Handler {
	r := mux.NewRouter()

	venues := &handlers.VenueHandler{Repo: repo}
	itineraries := &handlers.ItineraryHandler{
		Repo:     repo,
		Cache:    cache,
		Defaults: defaults,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/venues", venues.List).Methods(http.MethodGet)
	r.HandleFunc("/venues/{venueID}", venues.Get).Methods(http.MethodGet)
	r.HandleFunc("/venues/{venueID}/showtimes", venues.Showtimes).Methods(http.MethodGet)
	r.HandleFunc("/venues/{venueID}/itineraries", itineraries.Plan).Methods(http.MethodPost)
	r.HandleFunc("/venues/{venueID}/itineraries/chart", itineraries.Chart).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
