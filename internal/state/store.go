// Package state persists extraction watermarks between runs.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	_ "modernc.org/sqlite" // SQLite driver
)

// Watermark is the last-seen cursor value for one collection.
type Watermark struct {
	Collection  string
	CursorField string
	Value       interface{}
	UpdatedAt   time.Time
}

// Store is a SQLite-backed watermark store. Values round-trip through
// canonical BSON extended JSON so typed values (datetimes, ObjectIDs,
// decimals) come back as the same BSON kinds they went in as. A plain JSON
// encoding would collapse them into floats and strings and break typed
// query filters on the next run.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the watermark database under dataDir,
// defaulting to ~/.mongotap when dataDir is empty.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mongotap")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "state.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS watermarks (
			collection   TEXT PRIMARY KEY,
			cursor_field TEXT NOT NULL,
			value        TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating watermarks table: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores or replaces the watermark for a collection.
func (s *Store) Save(ctx context.Context, wm Watermark) error {
	encoded, err := encodeValue(wm.Value)
	if err != nil {
		return fmt.Errorf("encoding watermark for %s: %w", wm.Collection, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO watermarks (collection, cursor_field, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(collection) DO UPDATE SET
			cursor_field = excluded.cursor_field,
			value        = excluded.value,
			updated_at   = excluded.updated_at`,
		wm.Collection, wm.CursorField, encoded, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving watermark for %s: %w", wm.Collection, err)
	}
	return nil
}

// Get retrieves the watermark for a collection, or nil when none is stored.
func (s *Store) Get(ctx context.Context, collection string) (*Watermark, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT cursor_field, value, updated_at FROM watermarks WHERE collection = ?`,
		collection)

	wm := Watermark{Collection: collection}
	var encoded, updatedAt string
	if err := row.Scan(&wm.CursorField, &encoded, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading watermark for %s: %w", collection, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		wm.UpdatedAt = ts
	}

	value, err := decodeValue(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding watermark for %s: %w", collection, err)
	}
	wm.Value = value
	return &wm, nil
}

// Delete removes the watermark for a collection, forcing a full refresh on
// the next run.
func (s *Store) Delete(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM watermarks WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("deleting watermark for %s: %w", collection, err)
	}
	return nil
}

// encodeValue wraps the watermark in a single-field document so scalar
// values are representable in extended JSON.
func encodeValue(v interface{}) (string, error) {
	data, err := bson.MarshalExtJSON(bson.M{"value": v}, true, false)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeValue(encoded string) (interface{}, error) {
	var doc bson.M
	if err := bson.UnmarshalExtJSON([]byte(encoded), true, &doc); err != nil {
		return nil, err
	}
	return doc["value"], nil
}
