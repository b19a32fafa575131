package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/boltdriver/boltdriver-go/types"
)

// DefaultTokenPath is where the token file lives when no path is given,
// matching the official tooling.
const DefaultTokenPath = ".bolt-token.json"

// FileStore persists the token as a JSON document on disk. Reads tolerate
// the legacy flat layouts older tooling wrote; expired entries are deleted
// on load. Disk errors on the read path are downgraded to "no token".
type FileStore struct {
	path string
	log  zerolog.Logger
	now  func() time.Time
}

// FileStoreConfig configures a FileStore.
type FileStoreConfig struct {
	// Path of the token file. Default: DefaultTokenPath.
	Path string

	// Logger for load/save diagnostics.
	Logger zerolog.Logger
}

// NewFileStore creates a file-backed store.
func NewFileStore(cfg FileStoreConfig) *FileStore {
	path := cfg.Path
	if path == "" {
		path = DefaultTokenPath
	}
	return &FileStore{
		path: path,
		log:  cfg.Logger,
		now:  time.Now,
	}
}

// Path returns the token file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the canonical document, replacing any previous file.
func (s *FileStore) Save(token string, info *types.SessionInfo) error {
	if token == "" || info == nil {
		return fmt.Errorf("tokenstore: refusing to save empty session")
	}

	data, err := encode(token, info, s.now())
	if err != nil {
		return fmt.Errorf("encode token document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	s.log.Debug().Str("path", s.path).Int64("driver_id", info.DriverID).Msg("token saved")
	return nil
}

// Load reads and normalizes the stored document. An entry whose expiry is in
// the past is deleted and reported as absent.
func (s *FileStore) Load() (string, *types.SessionInfo, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Debug().Err(err).Str("path", s.path).Msg("token file unreadable, treating as absent")
		}
		return "", nil, ErrNoToken
	}

	token, info, err := normalize(raw, s.now())
	if err != nil {
		// Expired or unrecognized: remove so the next load is cheap.
		if removeErr := os.Remove(s.path); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			s.log.Debug().Err(removeErr).Str("path", s.path).Msg("failed to remove stale token file")
		}
		return "", nil, ErrNoToken
	}

	return token, info, nil
}

// Clear removes the token file. Clearing an absent file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// HasValid reports whether Load would return a session.
func (s *FileStore) HasValid() bool {
	_, _, err := s.Load()
	return err == nil
}
