package store

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"interactsh/internal/domain"
	"interactsh/internal/util/memzero"
)

// SessionFileStore keeps one encrypted session snapshot at path.
type SessionFileStore struct {
	path string
	mu   sync.Mutex

	// scrypt parameters; tests lower N.
	n, r, p int
}

// NewSessionFileStore returns a store for the file at path.
func NewSessionFileStore(path string) *SessionFileStore {
	n, r, p := scryptParamsDefault()
	return &SessionFileStore{path: path, n: n, r: r, p: p}
}

// Path returns the file location.
func (s *SessionFileStore) Path() string { return s.path }

// SaveSession encrypts snapshot with passphrase and replaces the file.
func (s *SessionFileStore) SaveSession(passphrase string, snapshot domain.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)
	b, err := encrypt(passphrase, raw, s.n, s.r, s.p)
	if err != nil {
		return err
	}
	return writeFile(s.path, b, 0o600)
}

// LoadSession decrypts the stored snapshot. ok is false when no file exists.
func (s *SessionFileStore) LoadSession(passphrase string) (domain.SessionSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return domain.SessionSnapshot{}, false, err
	}
	raw, err := decrypt(passphrase, b)
	if err != nil {
		return domain.SessionSnapshot{}, false, err
	}
	defer memzero.Zero(raw)
	var snap domain.SessionSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.SessionSnapshot{}, false, err
	}
	return snap, true, nil
}

// RemoveSession deletes the file. A missing file is not an error.
func (s *SessionFileStore) RemoveSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
