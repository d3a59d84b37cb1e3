// Package session persists the backend session token between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileName is the session file inside the data directory.
const FileName = "session.json"

// ErrNoSession is returned when neither the environment nor disk holds a token.
var ErrNoSession = errors.New("no session token, set OSINT_SESSION")

// Session is a persisted backend login.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore creates a store for the session file in dataDir.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, FileName)}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted session.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save writes sess with owner-only permissions.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete removes the persisted session. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve returns the session to use. A non-empty token (from the
// environment) wins and is persisted when it differs from the stored one;
// otherwise the stored session is returned.
func (s *Store) Resolve(token string) (*Session, error) {
	token = strings.TrimSpace(token)
	stored, err := s.Load()
	if err != nil && !errors.Is(err, ErrNoSession) {
		return nil, err
	}

	if token == "" {
		return stored, err
	}
	if stored != nil && stored.Token == token {
		return stored, nil
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}
