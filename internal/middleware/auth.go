package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionKey is the context key for storing the authenticated session.
const SessionKey contextKey = "session"

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// GetSession extracts the session from the context.
// Returns nil if not found.
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(SessionKey).(*session.Session)
	return sess
}

// GetEmail extracts the signed-in user's email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	if sess := GetSession(ctx); sess != nil {
		return sess.Identity.Email
	}
	return ""
}

// RequireAuth returns an interceptor that validates session tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, resolves
// the session it was issued for and adds the session to the request context.
// Tokens for closed sessions are rejected.
func RequireAuth(tokens *auth.TokenManager, sessions *session.Manager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			// Parse Bearer token
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			// Validate token
			claims, err := tokens.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			sess, err := sessions.Get(claims.SessionID())
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
				}
				return nil, connect.NewError(connect.CodeInternal, err)
			}

			// Call the next handler with enriched context
			return next(WithSession(ctx, sess), req)
		}
	}
}
