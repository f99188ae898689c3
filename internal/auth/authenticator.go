package auth

import (
	"context"

	"github.com/gammageek/wishlist/internal/models"
)

// Credential is what a login form or identity provider hands over.
// Which fields are used depends on the Authenticator.
type Credential struct {
	Email    string
	Password string

	// Token is an identity assertion from an external provider (a Google ID token).
	Token string
}

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, Google, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Method returns the auth method recorded on identities this authenticator produces.
	Method() string

	// Authenticate turns a credential into an identity.
	// Returns ErrInvalidCredentials if the credential is unusable.
	Authenticate(ctx context.Context, credential Credential) (models.Identity, error)
}
