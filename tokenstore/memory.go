package tokenstore

import (
	"fmt"
	"time"

	"github.com/boltdriver/boltdriver-go/types"
)

// MemoryStore keeps the token in a process-local variable. Intended for
// tests and short-lived sessions; nothing survives a restart.
type MemoryStore struct {
	token string
	info  *types.SessionInfo
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Save keeps a copy of the session in memory.
func (s *MemoryStore) Save(token string, info *types.SessionInfo) error {
	if token == "" || info == nil {
		return fmt.Errorf("tokenstore: refusing to save empty session")
	}
	copied := *info
	s.token = token
	s.info = &copied
	return nil
}

// Load returns the stored session, or ErrNoToken when absent or expired.
func (s *MemoryStore) Load() (string, *types.SessionInfo, error) {
	if s.info == nil {
		return "", nil, ErrNoToken
	}
	if !s.info.ExpiresAt.After(s.now()) {
		s.token = ""
		s.info = nil
		return "", nil, ErrNoToken
	}
	copied := *s.info
	return s.token, &copied, nil
}

// Clear drops the stored session.
func (s *MemoryStore) Clear() error {
	s.token = ""
	s.info = nil
	return nil
}

// HasValid reports whether Load would return a session.
func (s *MemoryStore) HasValid() bool {
	_, _, err := s.Load()
	return err == nil
}
