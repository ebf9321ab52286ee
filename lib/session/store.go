// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrStorageUnavailable wraps any failure to read or write the persisted
// token. Callers decide the fallback — the Controller treats it as
// "logged out" at startup rather than crashing.
var ErrStorageUnavailable = errors.New("session: token storage unavailable")

// Store persists a single session token between runs. All operations are
// single-attempt: failures are reported, never retried.
type Store interface {
	// Save writes the token, replacing any previous one.
	Save(token string) error

	// Load returns the persisted token, or "" if none is stored.
	Load() (string, error)

	// Clear removes the persisted token. Clearing an empty store is a
	// no-op success.
	Clear() error
}

// tokenFile is the on-disk shape of the session file. A structured file
// (rather than the bare token string) leaves room for adding fields like
// the server URL without a format break.
type tokenFile struct {
	Token string `json:"token"`
}

// FileStore persists the token as a JSON file with owner-only permissions.
// Analogous to SSH keys: log in once, then every command and the TUI load
// the session transparently.
type FileStore struct {
	path string
}

// DefaultSessionPath returns the well-known session file location.
// Checks TASKDECK_SESSION_FILE first, then $XDG_CONFIG_HOME/taskdeck/
// session.json, then ~/.config/taskdeck/session.json.
func DefaultSessionPath() string {
	if envPath := os.Getenv("TASKDECK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join(os.TempDir(), "taskdeck-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "taskdeck", "session.json")
}

// NewFileStore creates a FileStore at the given path. An empty path uses
// DefaultSessionPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultSessionPath()
	}
	return &FileStore{path: path}
}

// Path returns the file location backing this store.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the token. The parent directory is created with mode 0700
// and the file with mode 0600, since it contains an access token.
func (s *FileStore) Save(token string) error {
	data, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding session file: %v", ErrStorageUnavailable, err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStorageUnavailable, directory, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return nil
}

// Load returns the persisted token, or "" when the session file does not
// exist. An unreadable or unparseable file is a storage failure, not an
// absent session — the caller chooses how to degrade.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading %s: %v", ErrStorageUnavailable, s.path, err)
	}

	var file tokenFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return file.Token, nil
}

// Clear removes the session file. A missing file is a success.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return nil
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
// The zero value is ready to use.
type MemoryStore struct {
	mutex sync.Mutex
	token string

	// FailNext, when non-nil, is returned (wrapped) by the next store
	// operation and then reset. Lets tests exercise storage failures.
	FailNext error
}

func (s *MemoryStore) takeFailure() error {
	if s.FailNext == nil {
		return nil
	}
	err := s.FailNext
	s.FailNext = nil
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// Save stores the token in memory.
func (s *MemoryStore) Save(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Load returns the stored token, or "".
func (s *MemoryStore) Load() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.takeFailure(); err != nil {
		return "", err
	}
	return s.token, nil
}

// Clear drops the stored token.
func (s *MemoryStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	s.token = ""
	return nil
}
