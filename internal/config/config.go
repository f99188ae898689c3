// Package config reads server settings from the environment.
//
// A .env file in the working directory is loaded first when present.
// Variables already set in the environment win over the file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds the server settings.
type Config struct {
	Port           int
	DataDir        string
	StorageBackend string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
	GoogleClientID string

	// GeneratedSecret is true when JWT_SECRET was unset and a random secret
	// was generated. Tokens then do not survive a restart.
	GeneratedSecret bool
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the settings from the environment only.
func FromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}

	backend := strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory))
	if backend != BackendMemory && backend != BackendSQLite {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: want %s or %s", backend, BackendMemory, BackendSQLite)
	}

	cfg := &Config{
		Port:           port,
		DataDir:        getEnv("DATA_DIR", "./data"),
		StorageBackend: backend,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       ttl,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	return cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
