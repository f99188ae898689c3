// Package session keeps one isolated workspace per login.
//
// A session pairs the signed-in identity with its own record store, freshly
// loaded from the exports at login. Nothing a user adds is visible to other
// sessions or written back, and closing the session discards it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gammageek/wishlist/internal/ident"
	"github.com/gammageek/wishlist/internal/loader"
	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/storage"
)

// ErrNotFound is returned for unknown or closed sessions.
var ErrNotFound = errors.New("session not found")

// Source produces the dataset a new session starts from.
// It returns an error wrapping loader.ErrNoData when there is nothing to load.
type Source func(ctx context.Context) (*models.Dataset, *loader.Report, error)

// DirSource loads the CSV exports from dir.
func DirSource(dir string) Source {
	return func(ctx context.Context) (*models.Dataset, *loader.Report, error) {
		return loader.LoadDir(ctx, dir)
	}
}

// Session is one login.
type Session struct {
	ID       string
	Identity models.Identity
	Store    storage.Store

	// DataLoaded is false when the source had no data at login.
	DataLoaded bool

	// Report is the load report, nil when nothing was loaded.
	Report *loader.Report

	OpenedAt time.Time
}

// Snapshot reads the session's dataset.
func (s *Session) Snapshot(ctx context.Context) (*models.Dataset, error) {
	return s.Store.Snapshot(ctx)
}

// Manager tracks open sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	source   Source
	newStore storage.Factory
	logger   *slog.Logger

	ttl  time.Duration
	open prometheus.Gauge
	now  func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL expires sessions ttl after they were opened. Zero keeps them until closed.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithOpenGauge tracks the number of open sessions in g.
func WithOpenGauge(g prometheus.Gauge) Option {
	return func(m *Manager) {
		m.open = g
	}
}

// NewManager creates a Manager that loads every new session from source
// into a store created by newStore.
func NewManager(source Source, newStore storage.Factory, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		source:   source,
		newStore: newStore,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open logs identity in. A missing data source does not fail the login; the
// session is opened empty with DataLoaded false.
func (m *Manager) Open(ctx context.Context, identity models.Identity) (*Session, error) {
	m.Sweep()

	store, err := m.newStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	sess := &Session{
		ID:       ident.NewID(),
		Identity: identity,
		Store:    store,
		OpenedAt: m.now(),
	}

	data, report, err := m.source(ctx)
	switch {
	case errors.Is(err, loader.ErrNoData):
		m.logger.Warn("No data loaded for session", "email", identity.Email, "error", err)
	case err != nil:
		store.Close()
		return nil, fmt.Errorf("failed to load data: %w", err)
	default:
		if err := store.Import(ctx, data); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to import data: %w", err)
		}
		sess.DataLoaded = true
		sess.Report = report
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	m.gaugeAdd(1)

	m.logger.Info("Session opened",
		"session_id", sess.ID,
		"email", identity.Email,
		"auth_method", identity.AuthMethod,
		"data_loaded", sess.DataLoaded,
	)

	return sess, nil
}

// Get returns the open session with the given id. An expired session is
// closed and reported as ErrNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok && m.expired(sess, m.now()) {
		delete(m.sessions, id)
		m.mu.Unlock()
		m.discard(sess, "expired")
		return nil, ErrNotFound
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Close logs the session out and discards its store.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	return m.discard(sess, "closed")
}

// CloseAll closes every open session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		m.discard(sess, "shutdown")
	}
}

// Sweep closes every expired session and returns how many it closed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}

	now := m.now()
	var expired []*Session
	m.mu.Lock()
	for id, sess := range m.sessions {
		if m.expired(sess, now) {
			expired = append(expired, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range expired {
		m.discard(sess, "expired")
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Info("Expired sessions closed", "count", n)
			}
		}
	}
}

func (m *Manager) expired(sess *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(sess.OpenedAt) >= m.ttl
}

// discard closes the store of a session already removed from the map.
func (m *Manager) discard(sess *Session, reason string) error {
	m.gaugeAdd(-1)
	m.logger.Info("Session closed", "session_id", sess.ID, "email", sess.Identity.Email, "reason", reason)

	err := sess.Store.Close()
	if err != nil {
		m.logger.Warn("Failed to close session store", "session_id", sess.ID, "error", err)
	}
	return err
}

func (m *Manager) gaugeAdd(delta float64) {
	if m.open != nil {
		m.open.Add(delta)
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
