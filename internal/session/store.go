// Package session holds the admin authentication state and the guard that
// protects admin views.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists the single session token slot.
type Store interface {
	// Load returns the stored token, or "" if there is none.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the token in one file, readable by the owner only.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the token file location.
func (s *FileStore) Path() string { return s.path }

// Load implements Store.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session.FileStore.Load: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save implements Store.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session.FileStore.Save: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("session.FileStore.Save: %w", err)
	}
	return nil
}

// Clear implements Store. Clearing an empty slot is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session.FileStore.Clear: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns a MemoryStore holding token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load implements Store.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save implements Store.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// EnvStore wraps a Store with a token taken from the environment. The
// environment token wins on Load and is never written back; Save and Clear
// still reach the underlying store so that logout drops the override too.
type EnvStore struct {
	Store
	mu       sync.Mutex
	override string
}

// WithEnvToken returns store unchanged when token is empty.
func WithEnvToken(store Store, token string) Store {
	if token == "" {
		return store
	}
	return &EnvStore{Store: store, override: token}
}

// Load implements Store.
func (s *EnvStore) Load() (string, error) {
	s.mu.Lock()
	tok := s.override
	s.mu.Unlock()
	if tok != "" {
		return tok, nil
	}
	return s.Store.Load()
}

// Save implements Store.
func (s *EnvStore) Save(token string) error {
	s.mu.Lock()
	s.override = ""
	s.mu.Unlock()
	return s.Store.Save(token)
}

// Clear implements Store.
func (s *EnvStore) Clear() error {
	s.mu.Lock()
	s.override = ""
	s.mu.Unlock()
	return s.Store.Clear()
}
