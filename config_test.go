package boltdriver_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boltdriver "github.com/boltdriver/boltdriver-go"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := boltdriver.ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "android", cfg.Device.DeviceType)
	assert.NotEmpty(t, cfg.Device.DeviceUID)
	assert.Equal(t, "bolt", cfg.Auth.Brand)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("BOLT_AUTH_BASE_URL", "https://auth.example.test")
	t.Setenv("BOLT_DRIVER_BASE_URL", "https://data.example.test")
	t.Setenv("BOLT_TOKEN_PATH", "/tmp/custom-token.json")
	t.Setenv("BOLT_REQUEST_TIMEOUT", "3s")
	t.Setenv("BOLT_DEVICE_UID", "device-42")
	t.Setenv("BOLT_COUNTRY", "ee")
	t.Setenv("BOLT_LOG_LEVEL", "debug")

	cfg, err := boltdriver.ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.test", cfg.AuthBaseURL)
	assert.Equal(t, "https://data.example.test", cfg.DriverBaseURL)
	assert.Equal(t, "/tmp/custom-token.json", cfg.TokenPath)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "device-42", cfg.Device.DeviceUID)
	assert.Equal(t, "ee", cfg.Auth.Country)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestNewLogger_Disabled(t *testing.T) {
	log, err := boltdriver.NewLogger(boltdriver.LoggingConfig{Enabled: false})
	require.NoError(t, err)
	// A disabled logger must swallow everything without side effects.
	log.Error().Msg("should go nowhere")
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bolt.log")

	log, err := boltdriver.NewLogger(boltdriver.LoggingConfig{
		Enabled:  true,
		Level:    "debug",
		FilePath: path,
	})
	require.NoError(t, err)

	log.Info().Str("event", "test").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"test"`)
}
