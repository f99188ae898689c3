package auth

import (
	"context"
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gammageek/wishlist/internal/models"
)

// Ensure GoogleAuthenticator implements Authenticator
var _ Authenticator = (*GoogleAuthenticator)(nil)

// GoogleClaims are the fields read from a Google ID token payload.
type GoogleClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// GoogleAuthenticator accepts Google ID tokens obtained by the browser.
//
// The token is decoded but its signature is not verified: the identity
// provider is treated as a trusted collaborator. When clientID is set the
// token audience must contain it.
type GoogleAuthenticator struct {
	clientID string
	parser   *jwt.Parser
}

// NewGoogleAuthenticator creates a Google authenticator. clientID may be empty.
func NewGoogleAuthenticator(clientID string) *GoogleAuthenticator {
	return &GoogleAuthenticator{
		clientID: clientID,
		parser:   jwt.NewParser(),
	}
}

// Method returns models.AuthMethodGoogle.
func (a *GoogleAuthenticator) Method() string {
	return models.AuthMethodGoogle
}

// Authenticate decodes credential.Token into an identity.
func (a *GoogleAuthenticator) Authenticate(ctx context.Context, credential Credential) (models.Identity, error) {
	if credential.Token == "" {
		return models.Identity{}, ErrInvalidCredentials
	}

	claims := &GoogleClaims{}
	if _, _, err := a.parser.ParseUnverified(credential.Token, claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if claims.Email == "" {
		return models.Identity{}, fmt.Errorf("%w: token has no email", ErrInvalidCredentials)
	}
	if a.clientID != "" && !slices.Contains(claims.Audience, a.clientID) {
		return models.Identity{}, fmt.Errorf("%w: unexpected audience", ErrInvalidCredentials)
	}

	name := claims.Name
	if name == "" {
		name = DisplayName(claims.Email)
	}

	return models.Identity{
		Email:      claims.Email,
		FullName:   name,
		AuthMethod: models.AuthMethodGoogle,
		Picture:    claims.Picture,
	}, nil
}
