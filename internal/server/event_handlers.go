package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skitownrace/racereg/internal/middleware"
	"github.com/skitownrace/racereg/internal/models"
)

type eventRequest struct {
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	Location   string   `json:"location"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Zip        string   `json:"zip"`
	Venue      string   `json:"venue"`
	Discipline string   `json:"discipline"`
	Division   string   `json:"division"`
	Fee        *float64 `json:"fee"`
	URL        string   `json:"url"`
}

func (req *eventRequest) toParams(w http.ResponseWriter) (*models.EventParams, bool) {
	var date time.Time
	if req.Date != "" {
		var err error
		if date, err = time.Parse(dateFormat, req.Date); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be formatted YYYY-MM-DD"})
			return nil, false
		}
	}

	return &models.EventParams{
		Name:       req.Name,
		Date:       date,
		Location:   req.Location,
		City:       req.City,
		State:      req.State,
		Zip:        req.Zip,
		Venue:      req.Venue,
		Discipline: req.Discipline,
		Division:   req.Division,
		Fee:        req.Fee,
		URL:        req.URL,
	}, true
}

type eventResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Date            string   `json:"date"`
	CompetitorCount int      `json:"competitor_count"`
	Location        *string  `json:"location,omitempty"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Zip             string   `json:"zip"`
	Venue           string   `json:"venue"`
	Division        string   `json:"division"`
	Discipline      string   `json:"discipline"`
	CreatorID       int64    `json:"creator_id"`
	Fee             *float64 `json:"fee,omitempty"`
	URL             *string  `json:"url,omitempty"`
}

func toEventResponse(e models.Event) eventResponse {
	return eventResponse{
		ID:              e.ID,
		Name:            e.Name,
		Date:            e.Date.Format(dateFormat),
		CompetitorCount: e.CompetitorCount,
		Location:        e.Location,
		City:            e.City,
		State:           e.State,
		Zip:             e.Zip,
		Venue:           e.Venue,
		Division:        e.Division,
		Discipline:      e.Discipline,
		CreatorID:       e.CreatorID,
		Fee:             e.Fee,
		URL:             e.URL,
	}
}

// eventID parses the {eventID} route parameter.
func eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	filter := models.EventFilter{
		Search:     r.URL.Query().Get("search"),
		State:      r.URL.Query().Get("state"),
		Discipline: r.URL.Query().Get("discipline"),
	}

	events, err := s.store.ListEvents(r.Context(), filter)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, ok := req.toParams(w)
	if !ok {
		return
	}

	creatorID := middleware.GetAccountID(r.Context())
	id, err := s.store.CreateEvent(r.Context(), params, creatorID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Event created", "event_id", id, "creator_id", creatorID)

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil || event == nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toEventResponse(*event))
}

// requireCreator enforces that the caller owns the event. The store itself
// does not check ownership.
func (s *Server) requireCreator(w http.ResponseWriter, r *http.Request, id int64) bool {
	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return false
	}
	if event == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
		return false
	}

	ok, err := s.store.IsEventCreator(r.Context(), id, middleware.GetAccountID(r.Context()))
	if err != nil {
		respondStoreError(w, err)
		return false
	}
	if !ok {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "only the event creator can do that"})
		return false
	}
	return true
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	params, ok := req.toParams(w)
	if !ok {
		return
	}
	if !s.requireCreator(w, r, id) {
		return
	}

	if err := s.store.UpdateEvent(r.Context(), id, params); err != nil {
		respondStoreError(w, err)
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil || event == nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toEventResponse(*event))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	if !s.requireCreator(w, r, id) {
		return
	}

	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Event deleted", "event_id", id)
	w.WriteHeader(http.StatusNoContent)
}

type registrationResponse struct {
	EventID      int64  `json:"event_id"`
	BibNumber    int    `json:"bib_number"`
	RegisteredAt string `json:"registered_at"`
}

func (s *Server) handleRegisterForEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if event == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
		return
	}

	accountID := middleware.GetAccountID(r.Context())
	reg, err := s.store.RegisterForEvent(r.Context(), id, accountID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Registered for event", "event_id", id, "account_id", accountID, "bib_number", reg.BibNumber)
	respondJSON(w, http.StatusCreated, registrationResponse{
		EventID:      id,
		BibNumber:    reg.BibNumber,
		RegisteredAt: reg.RegisteredAt.Format(time.RFC3339),
	})
}

func (s *Server) handleUnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}

	accountID := middleware.GetAccountID(r.Context())
	if err := s.store.UnregisterFromEvent(r.Context(), id, accountID); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Unregistered from event", "event_id", id, "account_id", accountID)
	w.WriteHeader(http.StatusNoContent)
}

type myEventResponse struct {
	eventResponse
	BibNumber    int    `json:"bib_number"`
	RegisteredAt string `json:"registered_at"`
}

func (s *Server) handleMyEvents(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListAccountEvents(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]myEventResponse, len(rows))
	for i, row := range rows {
		out[i] = myEventResponse{
			eventResponse: toEventResponse(row.Event),
			BibNumber:     row.BibNumber,
			RegisteredAt:  row.RegisteredAt.Format(time.RFC3339),
		}
	}
	respondJSON(w, http.StatusOK, out)
}
