// internal/funnel/zipstore.go
//
// File-backed ZIP persistence.  One tiny JSON document keyed per visitor
// token, so a returning visitor sees their ZIP pre-filled without any
// database.  Writes are best-effort; losing a ZIP only costs five
// keystrokes.
//
//------------------------------------------------------------------------------

package funnel

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileZipStore persists ZIPs in a single JSON file under the runtime
// data directory.
type FileZipStore struct {
	mu    sync.Mutex
	path  string
	token string
}

// NewFileZipStore opens (or will create) the store at path for the given
// visitor token.
func NewFileZipStore(path, token string) *FileZipStore {
	return &FileZipStore{path: path, token: token}
}

func (s *FileZipStore) read() map[string]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	m := map[string]string{}
	if err := json.Unmarshal(raw, &m); err != nil {
		zap.S().Warnw("zip store corrupt, starting fresh", "path", s.path, "error", err)
		return map[string]string{}
	}
	return m
}

// Load returns the stored ZIP for this visitor, or "".
func (s *FileZipStore) Load() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()[s.token]
}

// Save writes the ZIP, creating the parent directory on first use.
func (s *FileZipStore) Save(zip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.read()
	if zip == "" {
		delete(m, s.token)
	} else {
		m[s.token] = zip
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		zap.S().Warnw("zip store mkdir failed", "path", s.path, "error", err)
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		zap.S().Warnw("zip store write failed", "path", s.path, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		zap.S().Warnw("zip store rename failed", "path", s.path, "error", err)
	}
}

// MemZipStore is an in-memory ZipStore for tests and sessions that opt
// out of persistence.
type MemZipStore struct {
	mu  sync.Mutex
	zip string
}

func (s *MemZipStore) Load() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zip
}

func (s *MemZipStore) Save(zip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zip = zip
}
