package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boltdriver/boltdriver-go/types"
)

// PostgresStore keeps one session row per store key. Useful when the client
// runs server-side and a token file is not an option.
//
// Expected schema:
//
//	CREATE TABLE bolt_sessions (
//	    store_key    TEXT PRIMARY KEY,
//	    token        TEXT NOT NULL,
//	    session_info JSONB NOT NULL,
//	    saved_at     TIMESTAMPTZ NOT NULL,
//	    expires_at   TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	pool      *pgxpool.Pool
	key       string
	opTimeout time.Duration
	now       func() time.Time
}

// PostgresStoreConfig configures a PostgresStore.
type PostgresStoreConfig struct {
	// Pool is the pgx connection pool (required).
	Pool *pgxpool.Pool

	// Key distinguishes sessions of different drivers sharing one table.
	// Default: "default".
	Key string

	// OpTimeout bounds each database operation behind the context-free
	// Store methods. Default: 5s.
	OpTimeout time.Duration
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(cfg PostgresStoreConfig) *PostgresStore {
	key := cfg.Key
	if key == "" {
		key = "default"
	}
	opTimeout := cfg.OpTimeout
	if opTimeout == 0 {
		opTimeout = 5 * time.Second
	}
	return &PostgresStore{
		pool:      cfg.Pool,
		key:       key,
		opTimeout: opTimeout,
		now:       time.Now,
	}
}

// SaveContext upserts the session row.
func (s *PostgresStore) SaveContext(ctx context.Context, token string, info *types.SessionInfo) error {
	if token == "" || info == nil {
		return fmt.Errorf("tokenstore: refusing to save empty session")
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode session info: %w", err)
	}

	query := `
		INSERT INTO bolt_sessions (store_key, token, session_info, saved_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (store_key) DO UPDATE
		SET token = EXCLUDED.token,
		    session_info = EXCLUDED.session_info,
		    saved_at = EXCLUDED.saved_at,
		    expires_at = EXCLUDED.expires_at
	`
	_, err = s.pool.Exec(ctx, query, s.key, token, payload, s.now().UTC(), info.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("save session row: %w", err)
	}
	return nil
}

// LoadContext reads the session row; expired rows are deleted and reported
// absent, matching the file store.
func (s *PostgresStore) LoadContext(ctx context.Context) (string, *types.SessionInfo, error) {
	query := `
		SELECT token, session_info, expires_at
		FROM bolt_sessions
		WHERE store_key = $1
	`

	var (
		token     string
		payload   []byte
		expiresAt time.Time
	)
	err := s.pool.QueryRow(ctx, query, s.key).Scan(&token, &payload, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrNoToken
		}
		// Database trouble means no token: the caller falls back to a
		// fresh authentication.
		return "", nil, ErrNoToken
	}

	if !expiresAt.After(s.now()) {
		_ = s.ClearContext(ctx)
		return "", nil, ErrNoToken
	}

	var info types.SessionInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return "", nil, ErrNoToken
	}
	if info.ExpiresAt.IsZero() {
		info.ExpiresAt = expiresAt
	}
	return token, &info, nil
}

// ClearContext deletes the session row.
func (s *PostgresStore) ClearContext(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM bolt_sessions WHERE store_key = $1`, s.key)
	if err != nil {
		return fmt.Errorf("delete session row: %w", err)
	}
	return nil
}

// Save implements Store with the configured operation timeout.
func (s *PostgresStore) Save(token string, info *types.SessionInfo) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	return s.SaveContext(ctx, token, info)
}

// Load implements Store with the configured operation timeout.
func (s *PostgresStore) Load() (string, *types.SessionInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	return s.LoadContext(ctx)
}

// Clear implements Store with the configured operation timeout.
func (s *PostgresStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()
	return s.ClearContext(ctx)
}

// HasValid reports whether Load would return a session.
func (s *PostgresStore) HasValid() bool {
	_, _, err := s.Load()
	return err == nil
}
