package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gammageek/wishlist/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator implements the email/password login form.
//
// There are no accounts to check against: any non-empty password is accepted
// and the password is discarded.
type PasswordAuthenticator struct{}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator() *PasswordAuthenticator {
	return &PasswordAuthenticator{}
}

// Method returns models.AuthMethodEmail.
func (a *PasswordAuthenticator) Method() string {
	return models.AuthMethodEmail
}

// Authenticate accepts any non-empty email and password.
// The display name is the local part of the email.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, credential Credential) (models.Identity, error) {
	email := strings.TrimSpace(credential.Email)
	if email == "" || credential.Password == "" {
		return models.Identity{}, ErrInvalidCredentials
	}

	return models.Identity{
		Email:      email,
		FullName:   DisplayName(email),
		AuthMethod: models.AuthMethodEmail,
	}, nil
}

// DisplayName derives a display name from the local part of an email address.
func DisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
