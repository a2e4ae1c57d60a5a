package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/skitownrace/racereg/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingToken       = errors.New("authorization token required")
)

// AccountStorage defines the persistence operations the authenticator needs.
// This allows the authenticator to be independent of the storage implementation.
type AccountStorage interface {
	CreateAccount(ctx context.Context, account *models.Account) (int64, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
// The original system this replaces compared plain-text passwords; credentials
// here are always hashed and salted before storage.
type PasswordAuthenticator struct {
	storage AccountStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage AccountStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new account with a hashed password. Required fields are
// validated up front; optional fields that are blank after trimming are
// stored as NULL. Duplicate emails surface as storage.ErrDuplicateEmail from
// the insert itself rather than a racy pre-check.
func (a *PasswordAuthenticator) Register(ctx context.Context, params *models.RegisterAccountParams) (*models.Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := a.ValidateCredential(params.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		USSkiID:      params.OptionalUSSkiID(),
		FISID:        params.OptionalFISID(),
		Email:        params.Email,
		PasswordHash: string(hashed),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		FullName:     params.FirstName + " " + params.LastName,
		DOB:          params.DOB,
		Division:     params.Division,
		Team:         params.OptionalTeam(),
		Disciplines:  params.Disciplines,
	}

	id, err := a.storage.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	account.ID = id

	return account, nil
}

// Authenticate verifies the email and password, returning the account if
// valid. The email match is exact and case-sensitive.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Account, error) {
	account, err := a.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil // no such account
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(credential)); err != nil {
		return nil, nil
	}

	return account, nil
}
