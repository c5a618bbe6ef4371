// Package credstore persists the authenticated session across process
// restarts. It is the console analog of browser local storage: a single JSON
// record holding the bearer token and the last known user profile, nothing
// else. All other client state is rebuilt at startup.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Record is the one persisted value. User is kept opaque here so the store
// has no dependency on the session package; the session store owns its shape.
type Record struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted record. A missing file is not an error; it simply
// yields an empty record, the same as a first run.
func (s *Store) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Record, error) {
	var rec Record
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return rec, nil
		}
		return rec, fmt.Errorf("read credentials: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode credentials: %w", err)
	}
	return rec, nil
}

// Save writes the record atomically (write to a temp file, then rename) with
// owner-only permissions.
func (s *Store) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(rec)
}

func (s *Store) save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}

// Clear removes the persisted record entirely. Clearing an absent record is
// a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// SaveToken updates only the token, preserving the stored user. It satisfies
// the gateway's TokenStore so token writes through the gateway reach durable
// storage.
func (s *Store) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	rec.Token = token
	return s.save(rec)
}

// ClearToken drops only the token. The stored user is kept; it is replaced
// wholesale on the next successful authentication anyway.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load()
	if err != nil {
		return err
	}
	if rec.Token == "" && rec.User == nil {
		return nil
	}
	rec.Token = ""
	return s.save(rec)
}
