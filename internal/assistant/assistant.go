// Package assistant implements the Q&A responder: a fixed table of trigger
// substrings with canned replies, falling back to a substring search over
// stored document text. This is literal keyword matching, not retrieval or
// ranking.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/skitownrace/racereg/internal/models"
)

// defaultReply is returned when no trigger and no document content matches.
const defaultReply = "I'm here to help with race registration and event information. " +
	"Could you please be more specific about what you'd like to know?"

// maxPreviews caps the document previews in a fallback reply.
const maxPreviews = 3

// previewLen caps each preview's length in runes.
const previewLen = 200

// trigger pairs a substring with its canned response. Triggers are checked
// in declaration order; the first match wins.
type trigger struct {
	keyword  string
	response string
}

var triggers = []trigger{
	{"hello", "Hello! How can I help you with race registration today?"},
	{"hi", "Hi there! Need help with race registration?"},
	{"event", "You can view all upcoming events in the Events tab. Would you like to know more about a specific event?"},
	{"register", "To register for an event, first make sure you're logged in, then go to the Events tab and click the Register button next to the event you're interested in."},
	{"help", "I can help you with registration, finding events, and answering questions about the race system. What would you like to know?"},
}

// DocumentSearcher is the slice of the store the responder needs.
type DocumentSearcher interface {
	SearchDocuments(ctx context.Context, query string, limit int) ([]models.Document, error)
}

// Responder produces replies to user messages.
type Responder struct {
	docs DocumentSearcher
}

// New creates a Responder backed by the given document search.
func New(docs DocumentSearcher) *Responder {
	return &Responder{docs: docs}
}

// Reply answers a user message: first by the trigger table, then by
// document search, then with the fixed default.
func (r *Responder) Reply(ctx context.Context, message string) (string, error) {
	lower := strings.ToLower(message)
	for _, t := range triggers {
		if strings.Contains(lower, t.keyword) {
			return t.response, nil
		}
	}

	docs, err := r.docs.SearchDocuments(ctx, message, maxPreviews)
	if err != nil {
		return "", fmt.Errorf("failed to search documents: %w", err)
	}
	if len(docs) > 0 {
		return formatPreviews(docs), nil
	}

	return defaultReply, nil
}

// formatPreviews renders matched documents as a numbered list of content
// previews.
func formatPreviews(docs []models.Document) string {
	var b strings.Builder
	b.WriteString("Here's what I found:\n")
	for i, doc := range docs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, preview(doc.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}

// preview collapses whitespace and truncates the content to previewLen runes.
func preview(content string) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	runes := []rune(collapsed)
	if len(runes) <= previewLen {
		return collapsed
	}
	return string(runes[:previewLen]) + "..."
}
