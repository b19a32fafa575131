package boltdriver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/boltdriver/boltdriver-go/types"
)

// dataTransport issues parameterized, bearer-authenticated requests to the
// driver-data host and decodes the uniform response envelope.
type dataTransport struct {
	baseURL    string
	httpClient HTTPDoer
	log        zerolog.Logger
	logging    LoggingConfig
	tracer     trace.Tracer
	now        func() time.Time
}

// fetch performs one data-endpoint call. It fails fast with a
// NotAuthorized error when no valid session is cached, so an
// unauthenticated request never leaves the client. No retries: a data call
// is at-most-once.
func fetch[T any](ctx context.Context, c *Client, method, path string, gps types.GPSInfo, extra url.Values) (*T, error) {
	t := c.data

	session := c.session
	if !session.Valid(t.now()) {
		return nil, types.NewNotAuthorizedError("no authenticated session: authenticate before calling data endpoints")
	}

	ctx, span := t.tracer.Start(ctx, "bolt"+path)
	defer span.End()

	query := url.Values{}
	c.cfg.Device.ApplyQuery(query)
	c.cfg.Auth.ApplyQuery(query)
	gps.ApplyQuery(query)
	query.Set("session_id", session.SessionID)
	query.Set("driver_id", fmt.Sprintf("%d", session.DriverID))
	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	reqURL := t.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	req.Header.Set("Accept", "application/json")

	if t.logging.LogRequests {
		t.log.Debug().Str("method", method).Str("path", path).Msg("request")
	}

	start := t.now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		if t.logging.LogErrors {
			t.log.Error().Err(err).Str("path", path).Msg("request failed")
		}
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if t.logging.LogResponses {
		t.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", t.now().Sub(start)).
			Msg("response")
	}

	var env types.APIResponse[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &types.APIError{
				Kind:       types.KindServerError,
				StatusCode: resp.StatusCode,
				Message:    http.StatusText(resp.StatusCode),
				Raw:        raw,
			}
		}
		return nil, fmt.Errorf("decode response from %s: %w", path, err)
	}

	code := env.Code
	if code == types.CodeOK && resp.StatusCode != http.StatusOK {
		code = resp.StatusCode
	}
	if apiErr := types.ClassifyResponse(resp.StatusCode, code, env.Message, env.ErrorData, raw); apiErr != nil {
		if apiErr.Kind == types.KindNotAuthorized {
			// The backend rejected the token; it is gone for good.
			c.clearSession()
		}
		if t.logging.LogErrors {
			t.log.Error().
				Str("path", path).
				Int("code", apiErr.Code).
				Str("kind", apiErr.Kind.String()).
				Str("message", apiErr.Message).
				Msg("api error")
		}
		return nil, apiErr
	}

	return &env.Data, nil
}
