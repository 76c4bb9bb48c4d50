package editor

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// CredentialStore persists the credential between sessions, the way the
// browser editor keeps the token in local storage.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileCredentialStore keeps the token in a mode-0600 file.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore creates a store at path.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

// Load reads the persisted token. A missing file means no credential,
// not an error.
func (s *FileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token atomically and tightens permissions.
func (s *FileCredentialStore) Save(token string) error {
	if err := atomic.WriteFile(s.path, strings.NewReader(token+"\n")); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict credential file permissions: %w", err)
	}
	return nil
}

// Clear removes the persisted token.
func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}

// MemoryCredentialStore is an in-process store for tests and for
// sessions that should not persist the token.
type MemoryCredentialStore struct {
	token string
}

// Load returns the held token.
func (s *MemoryCredentialStore) Load() (string, error) { return s.token, nil }

// Save replaces the held token.
func (s *MemoryCredentialStore) Save(token string) error {
	s.token = token
	return nil
}

// Clear drops the held token.
func (s *MemoryCredentialStore) Clear() error {
	s.token = ""
	return nil
}
