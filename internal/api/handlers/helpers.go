package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"showtime-itinerary-service/internal/platform/obs"
	"showtime-itinerary-service/internal/ports"
	"showtime-itinerary-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeServiceError maps domain failures to HTTP statuses.
// Unexpected errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrVenueNotFound):
		writeError(w, r, http.StatusNotFound, "venue not found")
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNoFeasibleSchedule):
		writeError(w, r, http.StatusUnprocessableEntity, "no feasible schedule for the requested day and window")
	case errors.Is(err, services.ErrStateSpaceExceeded):
		writeError(w, r, http.StatusUnprocessableEntity, services.ErrStateSpaceExceeded.Error())
	default:
		log.Printf("req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
