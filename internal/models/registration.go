package models

import "time"

// Registration is one ledger row: an account signed up for an event.
// (event, account) and (event, bib number) are each unique.
type Registration struct {
	ID        int64
	EventID   int64
	AccountID int64

	// BibNumber is assigned at registration time as one more than the
	// highest bib already issued for the event.
	BibNumber int

	// RegisteredAt is the server-assigned registration timestamp.
	RegisteredAt time.Time
}

// EventWithRegistration is an event joined with the caller's ledger row,
// as returned by per-account event listings.
type EventWithRegistration struct {
	Event
	BibNumber    int
	RegisteredAt time.Time
}
