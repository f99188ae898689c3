// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/gammageek/wishlist/internal/models"
	"github.com/gammageek/wishlist/internal/storage"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db     *sql.DB
	closed atomic.Bool
}

// New creates a Store for the given DSN and runs migrations.
// MemoryDSN gives a database that lives exactly as long as the Store.
// A file path has its parent directories created.
func New(ctx context.Context, dsn string) (*Store, error) {
	inMemory := dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
	if !inMemory && !strings.HasPrefix(dsn, "file:") {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one.
	if inMemory {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Factory returns a storage.Factory producing private in-memory databases.
func Factory() storage.Factory {
	return func(ctx context.Context) (storage.Store, error) {
		return New(ctx, MemoryDSN)
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) check() error {
	if s.closed.Load() {
		return storage.ErrClosed
	}
	return nil
}

// ListGroups returns all groups in insertion order.
func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, invite_code, created_by FROM groups ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.InviteCode, &g.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// ListMemberships returns all memberships in insertion order.
func (s *Store) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, user_email, role FROM memberships ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.GroupID, &m.UserEmail, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return memberships, nil
}

// ListItems returns all wishlist items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]models.WishlistItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, url, picture_url, price_range, priority, claimed_status, created_by
		 FROM wishlist_items ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistItem
	for rows.Next() {
		var i models.WishlistItem
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.URL, &i.PictureURL,
			&i.PriceRange, &i.Priority, &i.ClaimedStatus, &i.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// Snapshot reads the three collections.
func (s *Store) Snapshot(ctx context.Context) (*models.Dataset, error) {
	groups, err := s.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	memberships, err := s.ListMemberships(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Dataset{Groups: groups, Memberships: memberships, Items: items}, nil
}

// AddGroup inserts a group with a fresh id and invite code.
func (s *Store) AddGroup(ctx context.Context, group *models.Group) error {
	if err := s.check(); err != nil {
		return err
	}
	storage.PrepareGroup(group)
	return insertGroup(ctx, s.db, group)
}

// AddMembership inserts a membership.
func (s *Store) AddMembership(ctx context.Context, membership *models.Membership) error {
	if err := s.check(); err != nil {
		return err
	}
	return insertMembership(ctx, s.db, membership)
}

// AddItem inserts an item with a fresh id and status "available".
func (s *Store) AddItem(ctx context.Context, item *models.WishlistItem) error {
	if err := s.check(); err != nil {
		return err
	}
	storage.PrepareItem(item)
	return insertItem(ctx, s.db, item)
}

// Import inserts every record of data in one transaction.
func (s *Store) Import(ctx context.Context, data *models.Dataset) error {
	if err := s.check(); err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range data.Groups {
		if err := insertGroup(ctx, tx, &data.Groups[i]); err != nil {
			return err
		}
	}
	for i := range data.Memberships {
		if err := insertMembership(ctx, tx, &data.Memberships[i]); err != nil {
			return err
		}
	}
	for i := range data.Items {
		if err := insertItem(ctx, tx, &data.Items[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertGroup(ctx context.Context, db execer, g *models.Group) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, invite_code, created_by) VALUES (?, ?, ?, ?, ?)",
		g.ID, g.Name, g.Description, g.InviteCode, g.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

func insertMembership(ctx context.Context, db execer, m *models.Membership) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO memberships (group_id, user_email, role) VALUES (?, ?, ?)",
		m.GroupID, m.UserEmail, m.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

func insertItem(ctx context.Context, db execer, i *models.WishlistItem) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO wishlist_items
		 (id, name, description, url, picture_url, price_range, priority, claimed_status, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.Name, i.Description, i.URL, i.PictureURL,
		i.PriceRange, i.Priority, i.ClaimedStatus, i.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}
