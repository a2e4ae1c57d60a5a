package models

import "time"

// ChatMessage is one utterance in the assistant conversation. Messages from
// anonymous visitors are answered but never persisted, so AccountID is only
// nil in transit, not in storage.
type ChatMessage struct {
	ID int64

	// AccountID is the author (or recipient, for assistant messages).
	AccountID *int64

	Text string

	// FromAssistant distinguishes assistant replies from user messages.
	FromAssistant bool

	CreatedAt time.Time
}

// Document holds raw text extracted from an uploaded source. The assistant
// falls back to a substring search over document content when no canned
// response matches.
type Document struct {
	ID        int64
	Filename  string
	Content   string
	CreatedAt time.Time
}
