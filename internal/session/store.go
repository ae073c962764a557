// Package session manages the stored API credentials: an access token and a
// refresh token, both opaque strings issued by the backend. The Store port
// exists so the HTTP client and commands never touch ambient global state,
// and so tests can substitute an in-memory fake.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store is the storage port for session credentials.
type Store interface {
	// AccessToken returns the stored access token, or "" when absent.
	AccessToken() string
	// RefreshToken returns the stored refresh token, or "" when absent.
	RefreshToken() string
	// SetTokens replaces both tokens, as happens at login.
	SetTokens(access, refresh string) error
	// SetAccessToken replaces only the access token, as happens on refresh.
	SetAccessToken(access string) error
	// Clear removes all stored credentials.
	Clear() error
}

// HasSession reports whether a session is present. This is a presence check
// only: an expired-but-present token passes and fails later at the HTTP
// client, which then forces logout.
func HasSession(s Store) bool {
	return s.AccessToken() != ""
}

// state is the on-disk representation used by FileStore.
type state struct {
	Access    string    `json:"access"`
	Refresh   string    `json:"refresh"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore persists the session as a JSON state file, readable only by the
// owner. The zero value is not usable; call NewFileStore.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore at the given path. When path is empty the
// default location under XDG_DATA_HOME (or ~/.local/share) is used.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = defaultStatePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &FileStore{path: path}, nil
}

func defaultStatePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataDir, "firmdesk", "session.json"), nil
}

// AccessToken returns the stored access token, or "" when absent.
func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Access
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Refresh
}

// SetTokens replaces both tokens.
func (s *FileStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(state{Access: access, Refresh: refresh, UpdatedAt: time.Now()})
}

// SetAccessToken replaces the access token, keeping the refresh token.
func (s *FileStore) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load()
	st.Access = access
	st.UpdatedAt = time.Now()
	return s.save(st)
}

// Clear removes the state file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *FileStore) load() state {
	var st state
	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}
	// A corrupt state file reads as no session; login rewrites it.
	_ = json.Unmarshal(data, &st)
	return st
}

func (s *FileStore) save(st state) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryStore creates a MemoryStore holding the given tokens.
func NewMemoryStore(access, refresh string) *MemoryStore {
	return &MemoryStore{access: access, refresh: refresh}
}

// AccessToken returns the stored access token.
func (s *MemoryStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// RefreshToken returns the stored refresh token.
func (s *MemoryStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// SetTokens replaces both tokens.
func (s *MemoryStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

// SetAccessToken replaces the access token.
func (s *MemoryStore) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return nil
}

// Clear removes both tokens.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}
