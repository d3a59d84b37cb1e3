// Package cache stores raw backend responses in a local SQLite database so
// repeated commands against the same target do not refetch unchanged data.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx" // helper library
	_ "modernc.org/sqlite"    // pure go sqlite driver
)

// FileName is the database file created inside the cache directory.
const FileName = "cache.db"

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// Store is a response cache backed by SQLite.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

type entry struct {
	Body      []byte `db:"body"`
	FetchedAt int64  `db:"fetched_at"`
}

// Open opens or creates the cache database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dataSource := filepath.Join(dir, FileName) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	db := sqlx.NewDb(sqlDB, "sqlite")
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Get returns the body stored under key if it is younger than ttl. A ttl of
// zero or less accepts any age.
func (s *Store) Get(key string, ttl time.Duration) ([]byte, bool, error) {
	var e entry
	err := s.db.Get(&e, `SELECT body, fetched_at FROM responses WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	if ttl > 0 && s.now().Sub(time.Unix(e.FetchedAt, 0)) > ttl {
		return nil, false, nil
	}
	return e.Body, true, nil
}

// Put stores body under key, replacing any earlier value.
func (s *Store) Put(key string, body []byte) error {
	_, err := s.db.NamedExec(
		`INSERT INTO responses (key, body, fetched_at) VALUES (:key, :body, :fetched_at)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		map[string]any{
			"key":        key,
			"body":       body,
			"fetched_at": s.now().Unix(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Clear removes every cached response and returns how many were dropped.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM responses`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Len returns the number of cached responses.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM responses`); err != nil {
		return 0, fmt.Errorf("failed to count cache: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
