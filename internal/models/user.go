package models

// Auth methods.
const (
	AuthMethodEmail  = "email"
	AuthMethodGoogle = "google"
)

// Identity represents the signed-in user.
//
// There are no stored accounts: an identity is whatever the login step produced,
// and its Email is the key every record is joined on.
type Identity struct {
	// Email is the user's email address.
	Email string `json:"email"`

	// FullName is the display name. For email logins it is the local part of the address.
	FullName string `json:"full_name"`

	// AuthMethod is AuthMethodEmail or AuthMethodGoogle.
	AuthMethod string `json:"auth_method"`

	// Picture is an optional avatar URL supplied by the identity provider.
	Picture string `json:"picture,omitempty"`
}
