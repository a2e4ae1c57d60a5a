// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/skitownrace/racereg/internal/models"
)

// Store defines the persistence operations for the registration system.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the handler layer.
type Store interface {
	// CreateAccount persists a new account and returns its assigned id.
	// The insert does not report the id directly, so it is read back by
	// the unique email. Fails with ErrDuplicateEmail when the email is
	// already registered.
	CreateAccount(ctx context.Context, account *models.Account) (int64, error)

	// GetAccountByEmail retrieves an account by exact email match.
	// A miss returns (nil, nil).
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetAccountByID retrieves an account by id. A miss returns (nil, nil).
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)

	// LookupAccountID resolves an email to an account id. A miss returns
	// (0, nil).
	LookupAccountID(ctx context.Context, email string) (int64, error)

	// CreateEvent validates and inserts a new event owned by creatorID.
	CreateEvent(ctx context.Context, params *models.EventParams, creatorID int64) (int64, error)

	// UpdateEvent overwrites every mutable field of the event. Ownership
	// is the caller's responsibility, see IsEventCreator.
	UpdateEvent(ctx context.Context, eventID int64, params *models.EventParams) error

	// DeleteEvent removes the event's ledger rows and then the event
	// itself, in one transaction.
	DeleteEvent(ctx context.Context, eventID int64) error

	// GetEvent retrieves an event by id. A miss returns (nil, nil).
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)

	// IsEventCreator reports whether accountID created the event.
	IsEventCreator(ctx context.Context, eventID, accountID int64) (bool, error)

	// ListEvents returns events matching the filter, ordered by event
	// date ascending. No matches is an empty slice, not an error.
	ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)

	// RegisterForEvent assigns the next bib number, inserts the ledger
	// row and recomputes the event's competitor count, all in one
	// transaction. Fails with ErrAlreadyRegistered when the account
	// already holds a ledger row for the event.
	RegisterForEvent(ctx context.Context, eventID, accountID int64) (*models.Registration, error)

	// UnregisterFromEvent deletes the matching ledger row (no-op when
	// absent) and recomputes the competitor count in one transaction.
	UnregisterFromEvent(ctx context.Context, eventID, accountID int64) error

	// ListAccountEvents returns the events the account is registered
	// for, with bib number and registration timestamp, ordered by event
	// date ascending.
	ListAccountEvents(ctx context.Context, accountID int64) ([]models.EventWithRegistration, error)

	// SaveChatMessage persists one chat message.
	SaveChatMessage(ctx context.Context, msg *models.ChatMessage) error

	// ListChatMessages returns the account's chat transcript, oldest
	// first.
	ListChatMessages(ctx context.Context, accountID int64) ([]models.ChatMessage, error)

	// CreateDocument stores extracted document text for assistant search.
	CreateDocument(ctx context.Context, doc *models.Document) (int64, error)

	// SearchDocuments returns up to limit documents whose content
	// contains the query, case-insensitively.
	SearchDocuments(ctx context.Context, query string, limit int) ([]models.Document, error)

	// Close releases any resources held by the store.
	Close() error
}
