package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/metrics"
	"github.com/gammageek/wishlist/internal/middleware"
	"github.com/gammageek/wishlist/internal/session"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	password auth.Authenticator
	google   auth.Authenticator
	tokens   *auth.TokenManager
	sessions *session.Manager
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	password auth.Authenticator,
	google auth.Authenticator,
	tokens *auth.TokenManager,
	sessions *session.Manager,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		password: password,
		google:   google,
		tokens:   tokens,
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}
}

// Login signs in with email and password.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	return s.login(ctx, s.password, auth.Credential{
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
	})
}

// LoginWithGoogle signs in with a Google ID token.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req *connect.Request[LoginWithGoogleRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.Info("LoginWithGoogle request")

	return s.login(ctx, s.google, auth.Credential{Token: req.Msg.Credential})
}

func (s *AuthService) login(ctx context.Context, authenticator auth.Authenticator, credential auth.Credential) (*connect.Response[LoginResponse], error) {
	identity, err := authenticator.Authenticate(ctx, credential)
	if err != nil {
		s.logger.Warn("Login failed", "method", authenticator.Method(), "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	sess, err := s.sessions.Open(ctx, identity)
	if err != nil {
		s.logger.Error("Failed to open session", "email", identity.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Generate(sess.ID, identity)
	if err != nil {
		s.logger.Error("Failed to generate token", "email", identity.Email, "error", err)
		s.sessions.Close(sess.ID)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.Logins.WithLabelValues(identity.AuthMethod).Inc()
	if sess.Report != nil {
		s.metrics.RowsRejected.Add(float64(len(sess.Report.Rejected)))
	}

	s.logger.Info("User logged in successfully",
		"email", identity.Email,
		"auth_method", identity.AuthMethod,
		"data_loaded", sess.DataLoaded,
	)

	return connect.NewResponse(&LoginResponse{
		Token:      token,
		User:       identity,
		DataLoaded: sess.DataLoaded,
		Import:     sess.Report,
	}), nil
}

// Logout closes the caller's session. Its token stops working immediately.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	s.logger.Info("Logout request", "email", middleware.GetEmail(ctx))

	if err := s.sessions.Close(sess.ID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		s.logger.Warn("Failed to close session store", "session_id", sess.ID, "error", err)
	}

	s.metrics.Logouts.Inc()

	return connect.NewResponse(&LogoutResponse{}), nil
}

// GetCurrentUser returns the currently authenticated user's identity.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	sess := middleware.GetSession(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	s.logger.Info("GetCurrentUser request", "email", middleware.GetEmail(ctx))

	return connect.NewResponse(&GetCurrentUserResponse{User: sess.Identity}), nil
}
