// Package auth implements account registration, credential verification and
// session tokens.
package auth

import (
	"context"

	"github.com/skitownrace/racereg/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler layer.
type Authenticator interface {
	// Register creates a new account from the given params.
	// Returns the created account or an error if registration fails.
	Register(ctx context.Context, params *models.RegisterAccountParams) (*models.Account, error)

	// Authenticate verifies the credentials and returns the account if
	// valid. A wrong email or password returns (nil, nil); only
	// underlying storage failures surface as errors.
	Authenticate(ctx context.Context, email, credential string) (*models.Account, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
