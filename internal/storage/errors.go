package storage

import "errors"

var (
	// ErrDuplicateEmail is returned when registering an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAlreadyRegistered is returned when an account tries to register
	// twice for the same event.
	ErrAlreadyRegistered = errors.New("already registered for this event")

	// ErrNotFound is returned when an operation targets a row that does
	// not exist. Pure lookups model absence as a nil result instead.
	ErrNotFound = errors.New("not found")
)
