package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/skitownrace/racereg/internal/middleware"
	"github.com/skitownrace/racereg/internal/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat answers a user message. Authenticated conversations are
// persisted, message and reply both; anonymous chat is answered but leaves
// no trace.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "message required"})
		return
	}

	var accountID *int64
	if id := middleware.GetAccountID(r.Context()); id != 0 {
		accountID = &id
	}

	if accountID != nil {
		userMsg := &models.ChatMessage{AccountID: accountID, Text: req.Message}
		if err := s.store.SaveChatMessage(r.Context(), userMsg); err != nil {
			respondStoreError(w, err)
			return
		}
	}

	reply, err := s.responder.Reply(r.Context(), req.Message)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if accountID != nil {
		botMsg := &models.ChatMessage{AccountID: accountID, Text: reply, FromAssistant: true}
		if err := s.store.SaveChatMessage(r.Context(), botMsg); err != nil {
			respondStoreError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type chatMessageResponse struct {
	Text          string `json:"text"`
	FromAssistant bool   `json:"from_assistant"`
	CreatedAt     string `json:"created_at"`
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := s.store.ListChatMessages(r.Context(), middleware.GetAccountID(r.Context()))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]chatMessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = chatMessageResponse{
			Text:          msg.Text,
			FromAssistant: msg.FromAssistant,
			CreatedAt:     msg.CreatedAt.Format(time.RFC3339),
		}
	}
	respondJSON(w, http.StatusOK, out)
}

type documentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// handleCreateDocument stores already-extracted document text for the
// assistant's fallback search.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "filename required"})
		return
	}

	doc := &models.Document{Filename: req.Filename, Content: req.Content}
	id, err := s.store.CreateDocument(r.Context(), doc)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Document stored", "doc_id", id, "filename", req.Filename)
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}
