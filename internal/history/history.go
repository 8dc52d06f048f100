// Package history records install, update, and remove events in a SQLite
// ledger next to the channel installs, so `foxport history` can answer when
// a channel last changed and from what version.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	"github.com/adamancini/foxport/internal/types"
)

// EventKind classifies a ledger entry.
type EventKind string

const (
	EventInstall EventKind = "install"
	EventUpdate  EventKind = "update"
	EventRemove  EventKind = "remove"
)

// Event is one recorded channel transition.
type Event struct {
	ID          int64         `json:"id" yaml:"id"`
	Channel     types.Channel `json:"channel" yaml:"channel"`
	Kind        EventKind     `json:"kind" yaml:"kind"`
	FromVersion string        `json:"from_version,omitempty" yaml:"from_version,omitempty"`
	ToVersion   string        `json:"to_version,omitempty" yaml:"to_version,omitempty"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
}

// Store persists events in a single SQLite database file.
type Store struct {
	dbPath string
	dsn    string
}

// NewStore creates a store for the database at dbPath. The file and schema
// are created lazily on first write.
func NewStore(dbPath string) *Store {
	return &Store{
		dbPath: dbPath,
		dsn:    buildDSN(dbPath),
	}
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Store) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			channel      TEXT NOT NULL,
			kind         TEXT NOT NULL,
			from_version TEXT NOT NULL DEFAULT '',
			to_version   TEXT NOT NULL DEFAULT '',
			created_at   TEXT NOT NULL
		)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

// Record appends an event to the ledger.
func (s *Store) Record(ctx context.Context, ev Event) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO events (channel, kind, from_version, to_version, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(ev.Channel), string(ev.Kind), ev.FromVersion, ev.ToVersion, createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first. A limit of zero or
// less means all events.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	query := `
		SELECT id, channel, kind, from_version, to_version, created_at
		FROM events
		ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	events := []Event{}
	for rows.Next() {
		var ev Event
		var channel, kind, createdAt string
		if err := rows.Scan(&ev.ID, &channel, &kind, &ev.FromVersion, &ev.ToVersion, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Channel = types.Channel(channel)
		ev.Kind = EventKind(kind)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			ev.CreatedAt = t
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
