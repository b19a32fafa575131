package auth_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltdriver/boltdriver-go/auth"
	"github.com/boltdriver/boltdriver-go/types"
)

const directLink = "https://partners.bolt.eu/driverportal/magic-login?token="

func TestExtractToken_DirectURL(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiJ9.magic.abc123-_"

	got, err := auth.ExtractToken(directLink + token)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestExtractToken_DirectURLWithExtraParams(t *testing.T) {
	got, err := auth.ExtractToken("https://partners.bolt.eu/magic?lang=en&token=tok-42&theme=dark")
	require.NoError(t, err)
	assert.Equal(t, "tok-42", got)
}

func TestExtractToken_TrackingWrapper(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiJ9.magic.abc123-_"
	inner := directLink + token

	// Redirector embeds the percent-encoded direct URL as a path segment.
	wrapped := "https://clicks.bolteml.com/ls/click/" + url.PathEscape(inner)

	got, err := auth.ExtractToken(wrapped)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestExtractToken_TrackingWrapperQueryParam(t *testing.T) {
	inner := directLink + "tok-99"
	wrapped := "https://clicks.bolteml.com/redirect?upn=" + url.QueryEscape(inner)

	got, err := auth.ExtractToken(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "tok-99", got)
}

func TestExtractToken_NoToken(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"no token param", "https://partners.bolt.eu/driverportal/home"},
		{"empty token param", "https://partners.bolt.eu/magic?token="},
		{"empty input", ""},
		{"wrapper without token", "https://clicks.bolteml.com/ls/click/" + url.PathEscape("https://partners.bolt.eu/home")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.ExtractToken(tc.url)
			require.Error(t, err)
			assert.True(t, types.IsKind(err, types.KindValidation))
		})
	}
}
