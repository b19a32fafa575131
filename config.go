package boltdriver

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"github.com/boltdriver/boltdriver-go/auth"
	"github.com/boltdriver/boltdriver-go/tokenstore"
	"github.com/boltdriver/boltdriver-go/types"
)

// DefaultDriverBaseURL is the driver-data host.
const DefaultDriverBaseURL = "https://driver.live.boltsvc.net/driver"

// LoggingConfig controls what the client logs and where.
type LoggingConfig struct {
	// Enabled turns logging on. When false the client is silent.
	Enabled bool `env:"BOLT_LOG_ENABLED" env-default:"true"`

	// Level is a zerolog level name ("debug", "info", "warn", "error").
	Level string `env:"BOLT_LOG_LEVEL" env-default:"info"`

	// LogRequests logs every outgoing request.
	LogRequests bool `env:"BOLT_LOG_REQUESTS" env-default:"false"`

	// LogResponses logs response status and timing.
	LogResponses bool `env:"BOLT_LOG_RESPONSES" env-default:"false"`

	// LogErrors logs failed requests.
	LogErrors bool `env:"BOLT_LOG_ERRORS" env-default:"true"`

	// FilePath appends logs to a file in addition to stderr.
	FilePath string `env:"BOLT_LOG_FILE"`
}

// ClientConfig is everything needed to construct a Client. The zero value
// plus a DeviceInfo works; every other field has a sensible default.
type ClientConfig struct {
	// Device is the simulated mobile device identity.
	Device types.DeviceInfo

	// Auth selects flow and locale parameters.
	Auth types.AuthConfig

	// AuthBaseURL is the partner-driver auth host. Default: auth.DefaultBaseURL.
	AuthBaseURL string `env:"BOLT_AUTH_BASE_URL"`

	// DriverBaseURL is the driver-data host. Default: DefaultDriverBaseURL.
	DriverBaseURL string `env:"BOLT_DRIVER_BASE_URL"`

	// Timeout per request. Default: 10s.
	Timeout time.Duration `env:"BOLT_REQUEST_TIMEOUT" env-default:"10s"`

	// TokenPath is where the default file store keeps the token.
	// Default: tokenstore.DefaultTokenPath. Ignored when Store is set.
	TokenPath string `env:"BOLT_TOKEN_PATH"`

	// Logging configuration, used when Logger is nil.
	Logging LoggingConfig

	// Store overrides token persistence. Default: a FileStore at TokenPath.
	Store tokenstore.Store

	// Logger overrides the logger built from Logging.
	Logger *zerolog.Logger

	// HTTPClient overrides the HTTP client for both hosts. Mostly for
	// tests; production uses one resilient client per host.
	HTTPClient HTTPDoer
}

// ConfigFromEnv loads a ClientConfig from BOLT_* environment variables,
// including the device, auth, and logging sub-configurations.
func ConfigFromEnv() (ClientConfig, error) {
	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("read config from environment: %w", err)
	}
	cfg.Device = cfg.Device.WithDefaults()
	return cfg, nil
}

// withDefaults resolves every optional field.
func (cfg ClientConfig) withDefaults() ClientConfig {
	cfg.Device = cfg.Device.WithDefaults()
	if cfg.Auth.AuthMethod == "" {
		cfg.Auth.AuthMethod = "phone"
	}
	if cfg.Auth.Brand == "" {
		cfg.Auth.Brand = "bolt"
	}
	if cfg.Auth.Country == "" {
		cfg.Auth.Country = "pl"
	}
	if cfg.Auth.Language == "" {
		cfg.Auth.Language = "en-GB"
	}
	if cfg.Auth.Theme == "" {
		cfg.Auth.Theme = "dark"
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = auth.DefaultBaseURL
	}
	if cfg.DriverBaseURL == "" {
		cfg.DriverBaseURL = DefaultDriverBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = tokenstore.DefaultTokenPath
	}
	return cfg
}
