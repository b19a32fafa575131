// Package tokenstore persists the refresh token and session metadata the
// client needs to survive process restarts. Implementations: a JSON file
// (the default, matching the official tooling's .bolt-token.json), an
// in-memory store for tests and short-lived sessions, and a Postgres store
// for server-side deployments.
package tokenstore

import (
	"errors"

	"github.com/boltdriver/boltdriver-go/types"
)

// ErrNoToken is returned by Load when no usable token is stored. Expired
// and unreadable entries are reported the same way: the caller can always
// fall back to fresh authentication.
var ErrNoToken = errors.New("no stored token")

// Store is the token persistence contract. HasValid must agree with Load:
// it is false exactly when Load returns ErrNoToken.
type Store interface {
	// Save persists the refresh token together with its session metadata,
	// replacing any previous entry.
	Save(token string, info *types.SessionInfo) error

	// Load returns the stored token and session, or ErrNoToken when the
	// store is empty, unreadable, or the entry has expired.
	Load() (string, *types.SessionInfo, error)

	// Clear removes any stored entry. Clearing an empty store is a no-op.
	Clear() error

	// HasValid reports whether Load would succeed.
	HasValid() bool
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
