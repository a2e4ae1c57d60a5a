// Package server exposes the registration system as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skitownrace/racereg/internal/assistant"
	"github.com/skitownrace/racereg/internal/auth"
	"github.com/skitownrace/racereg/internal/middleware"
	"github.com/skitownrace/racereg/internal/models"
	"github.com/skitownrace/racereg/internal/storage"
)

// Server wires the stores, authenticator and assistant into HTTP handlers.
type Server struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	responder     *assistant.Responder
}

// New creates a Server over the given collaborators.
func New(store storage.Store, authenticator auth.Authenticator, jwt *auth.JWTManager) *Server {
	return &Server{
		store:         store,
		authenticator: authenticator,
		jwt:           jwt,
		responder:     assistant.New(store),
	}
}

// Routes sets up the API routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Get("/events", s.handleListEvents)
	r.With(middleware.OptionalAuth(s.jwt)).Post("/chat", s.handleChat)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.jwt))
		r.Get("/me", s.handleProfile)
		r.Post("/events", s.handleCreateEvent)
		r.Put("/events/{eventID}", s.handleUpdateEvent)
		r.Delete("/events/{eventID}", s.handleDeleteEvent)
		r.Post("/events/{eventID}/registration", s.handleRegisterForEvent)
		r.Delete("/events/{eventID}/registration", s.handleUnregisterFromEvent)
		r.Get("/my/events", s.handleMyEvents)
		r.Get("/chat/history", s.handleChatHistory)
		r.Post("/documents", s.handleCreateDocument)
	})

	return r
}

// errorResponse is the standard JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

// respondStoreError maps domain errors to HTTP statuses. Anything
// unrecognized is an internal error; the raw cause is logged, not leaked.
func respondStoreError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, auth.ErrWeakPassword):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrDuplicateEmail),
		errors.Is(err, storage.ErrAlreadyRegistered):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
