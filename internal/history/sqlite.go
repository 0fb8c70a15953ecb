// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	insertEntry = `INSERT INTO widget_entries (id, widget_id, timestamp, content) VALUES (?, ?, ?, ?)`
	selectByID  = `SELECT seq, id, widget_id, timestamp, content FROM widget_entries WHERE widget_id = ? ORDER BY seq DESC`
)

// DefaultBusyTimeout is how long a connection waits on a locked database.
const DefaultBusyTimeout = 5 * time.Second

// =============================================================================
// SQLITE STORE
// =============================================================================

// SQLiteStore is the durable Store. Writes to the same widget are serialized;
// writes to different widgets only share the database's own write lock.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	locks *keyLock
	now   func() time.Time
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// AddEntry implements Store.
func (s *SQLiteStore) AddEntry(ctx context.Context, widgetID, content string) (Entry, error) {
	if err := validate(widgetID, content); err != nil {
		return Entry{}, err
	}

	unlock := s.locks.lock(widgetID)
	defer unlock()

	entry := Entry{
		ID:        uuid.NewString(),
		WidgetID:  widgetID,
		Timestamp: FormatTimestamp(s.now()),
		Content:   content,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: begin: %v", ErrWriteFailed, err)
	}
	res, err := tx.ExecContext(ctx, insertEntry, entry.ID, entry.WidgetID, entry.Timestamp, entry.Content)
	if err != nil {
		_ = tx.Rollback()
		return Entry{}, fmt.Errorf("%w: insert: %v", ErrWriteFailed, err)
	}
	if entry.Seq, err = res.LastInsertId(); err != nil {
		_ = tx.Rollback()
		return Entry{}, fmt.Errorf("%w: sequence: %v", ErrWriteFailed, err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("%w: commit: %v", ErrWriteFailed, err)
	}

	return entry, nil
}

// Entries implements Store.
func (s *SQLiteStore) Entries(ctx context.Context, widgetID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectByID, widgetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.ID, &e.WidgetID, &e.Timestamp, &e.Content); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrReadFailed, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return entries, nil
}

// Count returns the total number of stored entries across all widgets.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM widget_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// OPENER
// =============================================================================

// Opener provisions a SQLiteStore once and hands out the same instance on
// every later call.
type Opener struct {
	Path        string
	BusyTimeout time.Duration
	Now         func() time.Time

	mu    sync.Mutex
	store *SQLiteStore
}

// NewOpener creates an opener for the database at path.
func NewOpener(path string) *Opener {
	return &Opener{Path: path, BusyTimeout: DefaultBusyTimeout, Now: time.Now}
}

// DefaultPath returns ~/.wellium/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".wellium", "history.db"), nil
}

// Open returns the store, creating the database and running migrations on
// first use. Failures wrap ErrStoreUnavailable and are not cached, so a
// later call may succeed once the environment is fixed.
func (o *Opener) Open(ctx context.Context) (*SQLiteStore, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.store != nil {
		return o.store, nil
	}

	store, err := open(ctx, o.Path, o.BusyTimeout, o.Now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	o.store = store
	return store, nil
}

func open(ctx context.Context, path string, busy time.Duration, now func() time.Time) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("empty database path")
	}
	if busy <= 0 {
		busy = DefaultBusyTimeout
	}
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn, err := dataSourceName(path, busy)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{
		db:    db,
		path:  path,
		locks: newKeyLock(),
		now:   now,
	}, nil
}

// dataSourceName builds a file: URI for path. Pragmas go in the query so
// every pooled connection gets them; the path is escaped so '#', '?' and '%'
// stay part of the file name.
func dataSourceName(path string, busy time.Duration) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // drive letter
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")

	u := url.URL{Scheme: "file", Path: p, RawQuery: q.Encode()}
	return u.String(), nil
}

// runMigrations applies the embedded migrations. The migrate instance is not
// closed because closing it would close db as well.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// SchemaVersion reports the applied migration version.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (uint, bool, error) {
	var version uint
	var dirty bool
	err := s.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if err != nil {
		return 0, false, err
	}
	return version, dirty, nil
}
