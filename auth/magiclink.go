package auth

import (
	"net/url"
	"strings"

	"github.com/boltdriver/boltdriver-go/types"
)

// ExtractToken pulls the single-use authentication token out of a magic-link
// URL. Two shapes are accepted:
//
//  1. the direct authentication URL carrying a `token` query parameter;
//  2. a tracking-redirector URL whose path (or a query value) contains a
//     percent-encoded copy of form 1.
//
// The wrapper is decoded exactly once and the token is returned byte for
// byte. A URL matching neither form yields a Validation error.
func ExtractToken(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", types.NewValidationError("magic link URL is empty")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", types.NewValidationError("magic link URL is not a valid URL: " + err.Error())
	}

	// Form 1: token directly on the URL.
	if token := u.Query().Get("token"); token != "" {
		return token, nil
	}

	// Form 2a: a path segment that is an encoded copy of the direct URL.
	// EscapedPath keeps the original encoding so the segment is decoded
	// exactly once here.
	for _, segment := range strings.Split(u.EscapedPath(), "/") {
		if token, ok := tokenFromEncoded(segment); ok {
			return token, nil
		}
	}

	// Form 2b: some redirectors stash the target URL in a query value
	// instead. Query values arrive decoded once already.
	for _, values := range u.Query() {
		for _, value := range values {
			if token, ok := tokenFromDirect(value); ok {
				return token, nil
			}
		}
	}

	return "", types.NewValidationError("no authentication token found in magic link URL")
}

// tokenFromEncoded percent-decodes candidate once and looks for a direct
// authentication URL inside.
func tokenFromEncoded(candidate string) (string, bool) {
	if !strings.Contains(candidate, "token%3D") && !strings.Contains(candidate, "token=") {
		return "", false
	}
	decoded, err := url.PathUnescape(candidate)
	if err != nil {
		return "", false
	}
	return tokenFromDirect(decoded)
}

// tokenFromDirect parses candidate as a direct authentication URL and
// returns its token query parameter.
func tokenFromDirect(candidate string) (string, bool) {
	if !strings.Contains(candidate, "token=") {
		return "", false
	}
	inner, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	token := inner.Query().Get("token")
	return token, token != ""
}
