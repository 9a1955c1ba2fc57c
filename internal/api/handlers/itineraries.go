package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"showtime-itinerary-service/internal/adapters/chart"
	"showtime-itinerary-service/internal/api/dto"
	"showtime-itinerary-service/internal/domain"
	"showtime-itinerary-service/internal/platform/obs"
	"showtime-itinerary-service/internal/ports"
	"showtime-itinerary-service/internal/services"

	"github.com/gorilla/mux"
)

var errInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// PlanDefaults are applied to requests that leave the corresponding field unset.
type PlanDefaults struct {
	DecayFactor    float64
	Horizon        int
	ExactMaxPaths  int
	ExactMaxVisits int
}

// ItineraryHandler plans a visitor's day at a venue.
type ItineraryHandler struct {
	Repo     ports.VenueRepository
	Cache    ports.PlanCache
	Defaults PlanDefaults
	Now      func() time.Time
}

// Plan handles POST /venues/{venueID}/itineraries.
func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	planned, date, ok := h.plan(w, r)
	if !ok {
		return
	}

	res := dto.ItineraryResponse{
		VenueID:    planned.Venue.ID,
		Date:       date.Format(time.DateOnly),
		Visits:     make([]dto.VisitResponse, 0, len(planned.Itinerary.Visits)),
		TotalScore: planned.Itinerary.TotalScore,
		Schedule:   planned.Schedule,
		Cached:     planned.Cached,
	}
	for _, v := range planned.Itinerary.Visits {
		res.Visits = append(res.Visits, dto.VisitResponse{
			AttractionID: v.Attraction,
			Attraction:   planned.Venue.Attractions[v.Attraction].Name,
			Start:        domain.FormatClock(v.Start),
			End:          domain.FormatClock(v.End),
			Score:        v.Score,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Chart handles POST /venues/{venueID}/itineraries/chart and answers with an HTML page.
func (h *ItineraryHandler) Chart(w http.ResponseWriter, r *http.Request) {
	planned, _, ok := h.plan(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderItinerary(&buf, planned.Venue, planned.Itinerary); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("req_id=%s write chart failed: err=%v", obs.RequestID(r.Context()), err)
	}
}

// plan decodes the body and runs the planning service.
// On failure it has already written the error response.
func (h *ItineraryHandler) plan(w http.ResponseWriter, r *http.Request) (*services.PlannedVisit, time.Time, bool) {
	var req dto.ItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, time.Time{}, false
	}

	planReq, err := h.toPlanRequest(mux.Vars(r)["venueID"], req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, time.Time{}, false
	}

	planned, err := services.PlanVisit(r.Context(), planReq, h.Repo, h.Cache)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, time.Time{}, false
	}

	return planned, planReq.Date, true
}

func (h *ItineraryHandler) toPlanRequest(venueID string, req dto.ItineraryRequest) (services.PlanVisitRequest, error) {
	date, err := parseDate(req.Date, h.Now)
	if err != nil {
		return services.PlanVisitRequest{}, err
	}

	var window *domain.TimeWindow
	if strings.TrimSpace(req.BeginTime) != "" || strings.TrimSpace(req.EndTime) != "" {
		tw := domain.FullDay
		if s := strings.TrimSpace(req.BeginTime); s != "" {
			if tw.Begin, err = domain.ParseClock(s); err != nil {
				return services.PlanVisitRequest{}, errors.New("begin_time: " + err.Error())
			}
		}
		if s := strings.TrimSpace(req.EndTime); s != "" {
			if tw.End, err = domain.ParseClock(s); err != nil {
				return services.PlanVisitRequest{}, errors.New("end_time: " + err.Error())
			}
		}
		window = &tw
	}

	maxVisits := h.Defaults.ExactMaxVisits
	if req.MaxVisits != nil {
		maxVisits = *req.MaxVisits
	}

	decay := h.Defaults.DecayFactor
	if req.DecayFactor != nil {
		decay = *req.DecayFactor
	}

	return services.PlanVisitRequest{
		VenueID:       venueID,
		Date:          date,
		Scores:        req.Scores,
		BufferMinutes: req.BufferMinutes,
		Window:        window,
		DecayFactor:   decay,
		Horizon:       h.Defaults.Horizon,
		Exact:         req.Exact,
		MaxPaths:      h.Defaults.ExactMaxPaths,
		MaxVisits:     maxVisits,
	}, nil
}
