package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/gammageek/wishlist/internal/auth"
	"github.com/gammageek/wishlist/internal/metrics"
	"github.com/gammageek/wishlist/internal/service"
	"github.com/gammageek/wishlist/internal/session"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.GeneratedSecret {
		slog.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	m := metrics.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	sessions := session.NewManager(
		session.DirSource(cfg.DataDir),
		storeFactory(cfg.StorageBackend),
		slog.Default(),
		session.WithTTL(cfg.TokenTTL),
		session.WithOpenGauge(m.OpenSessions),
	)
	defer sessions.CloseAll()
	go sessions.Run(ctx, sweepInterval)

	slog.Info("Sessions configured",
		"data_dir", cfg.DataDir,
		"storage_backend", cfg.StorageBackend,
		"token_ttl", cfg.TokenTTL,
	)

	services := &service.Services{
		Auth: service.NewAuthService(
			auth.NewPasswordAuthenticator(),
			auth.NewGoogleAuthenticator(cfg.GoogleClientID),
			tokens,
			sessions,
			m,
			slog.Default(),
		),
		Groups:    service.NewGroupService(m),
		Wishlists: service.NewWishlistService(m),
		Dashboard: service.NewDashboardService(),
		Tokens:    tokens,
		Sessions:  sessions,
		Metrics:   m,
	}

	mux := http.NewServeMux()
	services.Register(mux)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	handler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", "http://localhost"+server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "open_sessions", sessions.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
