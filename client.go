// Package boltdriver is a client for the private mobile backend API of the
// Bolt partner driver app. It authenticates a driver over SMS one-time
// code or emailed magic link, persists the resulting session, and exposes
// the read-mostly data endpoints the official app uses.
package boltdriver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/boltdriver/boltdriver-go/auth"
	"github.com/boltdriver/boltdriver-go/internal/resilience"
	"github.com/boltdriver/boltdriver-go/tokenstore"
	"github.com/boltdriver/boltdriver-go/types"
)

// DataHostName identifies the driver-data host in health reports.
const DataHostName = "driver-data"

// HTTPDoer abstracts HTTP request execution. Both *http.Client and the
// internal resilient client satisfy it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is one logical driver session against the Bolt backend. It is not
// safe to drive two authentication flows on the same Client concurrently;
// data calls are independent of each other.
type Client struct {
	cfg   ClientConfig
	log   zerolog.Logger
	store tokenstore.Store

	authsvc  *auth.Service
	data     *dataTransport
	registry *resilience.Registry

	session   *types.SessionInfo
	creds     *types.Credentials
	challenge *auth.OTPChallenge
}

// NewClient constructs a client and loads any stored session. The caller
// still decides whether to trust it (ValidateExistingToken) or start a
// fresh auth flow.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg = cfg.withDefaults()

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	} else {
		built, err := NewLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
		log = built
	}

	store := cfg.Store
	if store == nil {
		store = tokenstore.NewFileStore(tokenstore.FileStoreConfig{
			Path:   cfg.TokenPath,
			Logger: log,
		})
	}

	registry := resilience.NewRegistry()

	authHTTP := cfg.HTTPClient
	if authHTTP == nil {
		clientCfg := resilience.DefaultClientConfig(auth.HostName)
		clientCfg.Timeout = cfg.Timeout
		rc := resilience.NewClient(clientCfg)
		registry.Register(auth.HostName, rc)
		authHTTP = rc
	}

	dataHTTP := cfg.HTTPClient
	if dataHTTP == nil {
		clientCfg := resilience.DefaultClientConfig(DataHostName)
		clientCfg.Timeout = cfg.Timeout
		rc := resilience.NewClient(clientCfg)
		registry.Register(DataHostName, rc)
		dataHTTP = rc
	}

	c := &Client{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: registry,
	}

	c.authsvc = auth.NewService(auth.ServiceConfig{
		BaseURL:    cfg.AuthBaseURL,
		HTTPClient: &recordingDoer{name: auth.HostName, next: authHTTP, registry: registry},
		Store:      store,
		Logger:     log,
	})

	c.data = &dataTransport{
		baseURL:    strings.TrimSuffix(cfg.DriverBaseURL, "/"),
		httpClient: &recordingDoer{name: DataHostName, next: dataHTTP, registry: registry},
		log:        log,
		logging:    cfg.Logging,
		tracer:     otel.Tracer("boltdriver"),
		now:        time.Now,
	}

	c.LoadStoredSession()

	return c, nil
}

// Session returns a copy of the current session, or nil when not
// authenticated.
func (c *Client) Session() *types.SessionInfo {
	if c.session == nil {
		return nil
	}
	copied := *c.session
	return &copied
}

// IsAuthenticated reports whether the client holds an unexpired session.
func (c *Client) IsAuthenticated() bool {
	return c.session.Valid(time.Now())
}

// HostHealth returns circuit breaker health for both backend hosts.
func (c *Client) HostHealth() []*resilience.HostHealth {
	return c.registry.AllHealth()
}

// LoadStoredSession pulls the persisted session into the in-memory cache.
// Returns true when a valid stored session was found.
func (c *Client) LoadStoredSession() bool {
	_, info, err := c.store.Load()
	if err != nil {
		return false
	}
	c.session = info
	return true
}

// ValidateExistingToken checks the cached (or freshly loaded) session with
// one lightweight authenticated call. A NOT_AUTHORIZED-class rejection
// clears the session locally; any other failure is treated as invalid to
// fail closed.
func (c *Client) ValidateExistingToken(ctx context.Context) bool {
	if c.session == nil && !c.LoadStoredSession() {
		return false
	}

	if _, err := c.GetNavBarBadges(ctx, types.GPSInfo{}); err != nil {
		if types.IsKind(err, types.KindNotAuthorized) {
			c.clearSession()
		}
		return false
	}
	return true
}

// StartPhoneAuth begins the SMS OTP flow for the given phone number. The
// returned result is either a challenge or the SMS-limit outcome telling
// the caller to switch to the magic-link flow.
func (c *Client) StartPhoneAuth(ctx context.Context, phone string) (*auth.StartResult, error) {
	c.creds = &types.Credentials{Phone: phone}
	c.challenge = nil

	result, err := c.authsvc.StartPhoneAuth(ctx, c.cfg.Device, c.cfg.Auth, c.creds)
	if err != nil {
		c.creds = nil
		return nil, err
	}
	if result.Status == auth.StartOK {
		c.challenge = result.Challenge
	}
	return result, nil
}

// ConfirmPhoneAuth finishes the SMS OTP flow with the user-entered code.
func (c *Client) ConfirmPhoneAuth(ctx context.Context, code string) (*types.SessionInfo, error) {
	if c.creds == nil {
		return nil, types.NewValidationError("no phone auth in progress: call StartPhoneAuth first")
	}
	c.creds.VerificationCode = code

	info, err := c.authsvc.ConfirmPhoneAuth(ctx, c.cfg.Device, c.cfg.Auth, c.creds, c.challenge)
	if err != nil {
		return nil, err
	}

	// The scratch credentials are done regardless of outcome.
	c.creds = nil
	c.challenge = nil
	c.session = info
	return info, nil
}

// SendMagicLink asks the backend to email a single-use login link.
func (c *Client) SendMagicLink(ctx context.Context, email string) error {
	return c.authsvc.SendMagicLink(ctx, c.cfg.Device, c.cfg.Auth, email)
}

// AuthenticateWithMagicLink accepts either the emailed URL (direct or
// tracking-wrapped) or the bare token and completes the magic-link flow.
func (c *Client) AuthenticateWithMagicLink(ctx context.Context, linkOrToken string) (*types.SessionInfo, error) {
	token := linkOrToken
	if strings.Contains(linkOrToken, "://") {
		extracted, err := auth.ExtractToken(linkOrToken)
		if err != nil {
			return nil, err
		}
		token = extracted
	}

	info, err := c.authsvc.AuthenticateWithToken(ctx, c.cfg.Device, c.cfg.Auth, token)
	if err != nil {
		return nil, err
	}
	c.session = info
	return info, nil
}

// Logout tells the backend to drop the session (best effort) and clears it
// locally.
func (c *Client) Logout(ctx context.Context) error {
	if c.session.Valid(time.Now()) {
		if _, err := fetch[struct{}](ctx, c, http.MethodPost, "/logout", types.GPSInfo{}, nil); err != nil {
			c.log.Warn().Err(err).Msg("server-side logout failed, clearing locally")
		}
	}
	c.clearSession()
	return nil
}

func (c *Client) clearSession() {
	c.session = nil
	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear token store")
	}
}

// recordingDoer feeds request outcomes into the host health registry.
type recordingDoer struct {
	name     string
	next     HTTPDoer
	registry *resilience.Registry
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.next.Do(req)
	if err != nil {
		d.registry.RecordFailure(d.name, err)
		return nil, err
	}
	d.registry.RecordSuccess(d.name)
	return resp, nil
}
