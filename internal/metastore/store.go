package metastore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fathomdata/larder/pkg/types"
)

// Store reads and writes the metadata database at a fixed path. Connections
// are scoped per logical operation: each call opens the database, runs its
// statements, and closes on every exit path. No handle outlives a call, so
// a crashed operation never wedges the file for the next one.
//
// There is no cross-process coordination beyond SQLite's own locking;
// concurrent writers are last-writer-wins at the row level.
type Store struct {
	path string
	now  func() time.Time
}

// New returns a Store for the database at path. Call Init before first use.
func New(path string) *Store {
	return &Store{path: path, now: func() time.Time { return time.Now().UTC() }}
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Init creates the database file, schema, and seed metadata if they do not
// exist. Init is idempotent.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	return s.withDB(func(db *sql.DB) error {
		for _, ddl := range schemaDDL {
			if _, err := db.Exec(ddl); err != nil {
				return fmt.Errorf("creating schema: %w", err)
			}
		}
		if err := s.seedMeta(db, metaKeySchemaVersion, schemaVersion); err != nil {
			return err
		}
		return s.seedMeta(db, metaKeyStoreID, generateID())
	})
}

// withDB opens the database, runs fn, and guarantees the connection is
// released.
func (s *Store) withDB(fn func(*sql.DB) error) error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening store %s: %w", s.path, err)
	}
	defer db.Close()
	return fn(db)
}

// seedMeta inserts a meta row only when the key is absent.
func (s *Store) seedMeta(db *sql.DB, key, value string) error {
	now := s.now().Format(time.RFC3339)
	_, err := db.Exec(
		"INSERT INTO meta (key, value, created_at, updated_at) VALUES (?, ?, ?, ?) ON CONFLICT(key) DO NOTHING",
		key, value, now, now,
	)
	if err != nil {
		return fmt.Errorf("seeding meta %s: %w", key, err)
	}
	return nil
}

// GetMeta returns the value stored under key, or ErrNotFound.
func (s *Store) GetMeta(key string) (string, error) {
	if key == "" {
		return "", types.ErrInvalidName
	}
	var value string
	err := s.withDB(func(db *sql.DB) error {
		err := db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting meta %s: %w", key, err)
		}
		return nil
	})
	return value, err
}

// SetMeta upserts a meta key/value pair, bumping updated_at.
func (s *Store) SetMeta(key, value string) error {
	if key == "" {
		return types.ErrInvalidName
	}
	return s.withDB(func(db *sql.DB) error {
		now := s.now().Format(time.RFC3339)
		_, err := db.Exec(
			`INSERT INTO meta (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
             ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now, now,
		)
		if err != nil {
			return fmt.Errorf("setting meta %s: %w", key, err)
		}
		return nil
	})
}

// StoreID returns the identifier seeded at Init.
func (s *Store) StoreID() (string, error) {
	return s.GetMeta(metaKeyStoreID)
}

// generateID generates a UUID v7, falling back to v4 if the clock-based
// generation fails.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// parseTime parses an RFC3339 column value.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	return t, nil
}
