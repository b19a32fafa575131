package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/boltdriver/boltdriver-go/internal/resilience"
	"github.com/boltdriver/boltdriver-go/types"
)

// DefaultBaseURL is the partner-driver auth host.
const DefaultBaseURL = "https://partnerdriver.bolt.eu/partnerDriver"

// HostName identifies the auth host in health reports.
const HostName = "partner-auth"

// HTTPDoer abstracts HTTP request execution. Both *http.Client and the
// internal resilient client satisfy it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenStore is the slice of the token store contract the auth service
// needs to persist a successful login.
type TokenStore interface {
	Save(token string, info *types.SessionInfo) error
	Clear() error
}

// ServiceConfig configures the auth service.
type ServiceConfig struct {
	// BaseURL of the partner-driver auth host. Default: DefaultBaseURL.
	BaseURL string

	// HTTPClient to use. If nil, a resilient client with a 10s timeout and
	// no automatic retries is created.
	HTTPClient HTTPDoer

	// Store receives the session after a successful flow. Optional; when
	// nil the session is only returned to the caller.
	Store TokenStore

	// Logger for flow diagnostics.
	Logger zerolog.Logger

	// Timeout for the default HTTP client. Default: 10s.
	Timeout time.Duration
}

// Service drives the phone-OTP and magic-link authentication flows.
type Service struct {
	baseURL    string
	httpClient HTTPDoer
	store      TokenStore
	log        zerolog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewService creates an auth service.
func NewService(cfg ServiceConfig) *Service {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(HostName)
		if cfg.Timeout > 0 {
			clientCfg.Timeout = cfg.Timeout
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Service{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		store:      cfg.Store,
		log:        cfg.Logger,
		tracer:     otel.Tracer("boltdriver/auth"),
		now:        time.Now,
	}
}

// StartStatus tags the outcome of StartPhoneAuth.
type StartStatus int

const (
	// StartOK means the code was sent and a challenge is available.
	StartOK StartStatus = iota

	// StartSmsLimitReached means the server is rate limiting OTP delivery
	// (code 299, SMS_LIMIT_REACHED). Not a failure: the caller should
	// cool down or switch to the magic-link flow.
	StartSmsLimitReached
)

// StartResult is the tagged outcome of StartPhoneAuth. Challenge is set
// only when Status is StartOK.
type StartResult struct {
	Status    StartStatus
	Challenge *OTPChallenge
}

// StartPhoneAuth begins the phone-OTP flow: the server sends an SMS code to
// creds.Phone. On success the verification token is recorded in creds and
// returned in the challenge.
func (s *Service) StartPhoneAuth(ctx context.Context, device types.DeviceInfo, cfg types.AuthConfig, creds *types.Credentials) (*StartResult, error) {
	if err := ValidatePhone(creds.Phone); err != nil {
		return nil, err
	}

	body := startAuthRequest{
		Phone:             creds.Phone,
		PhoneAreaCodeAuto: true,
		AuthMethod:        cfg.AuthMethod,
	}

	env, err := postJSON[startAuthData](ctx, s, pathStartAuthentication, device, cfg, body)
	if err != nil {
		return nil, err
	}

	if env.Code == types.CodeSmsLimitReached || strings.Contains(strings.ToUpper(env.Message), "SMS_LIMIT") {
		s.log.Warn().Str("phone", creds.Phone).Msg("sms limit reached, magic-link fallback advised")
		return &StartResult{Status: StartSmsLimitReached}, nil
	}
	if apiErr := s.classify(env.Code, env.Message, env.ErrorData); apiErr != nil {
		return nil, apiErr
	}

	creds.VerificationToken = env.Data.VerificationToken

	challenge := &OTPChallenge{
		VerificationToken: env.Data.VerificationToken,
		Channel:           env.Data.VerificationChannel,
		Target:            env.Data.VerificationTarget,
		CodeLength:        env.Data.VerificationLength,
		ResendWaitSeconds: env.Data.ResendWaitTimeSeconds,
	}
	if challenge.CodeLength == 0 {
		challenge.CodeLength = DefaultOTPLength
	}

	s.log.Info().
		Str("channel", challenge.Channel).
		Str("target", challenge.Target).
		Int("code_length", challenge.CodeLength).
		Msg("otp challenge started")

	return &StartResult{Status: StartOK, Challenge: challenge}, nil
}

// ConfirmPhoneAuth exchanges the verification token and the user-entered
// code for a token pair. The code is validated locally against the
// challenge before any network call. On success the session is persisted
// and returned.
func (s *Service) ConfirmPhoneAuth(ctx context.Context, device types.DeviceInfo, cfg types.AuthConfig, creds *types.Credentials, challenge *OTPChallenge) (*types.SessionInfo, error) {
	expectedLen := DefaultOTPLength
	if challenge != nil && challenge.CodeLength > 0 {
		expectedLen = challenge.CodeLength
	}
	if err := ValidateOTPCode(creds.VerificationCode, expectedLen); err != nil {
		return nil, err
	}
	if creds.VerificationToken == "" {
		return nil, types.NewValidationError("no verification token: start the phone flow first")
	}

	body := confirmAuthRequest{
		VerificationToken: creds.VerificationToken,
		Code:              creds.VerificationCode,
	}

	env, err := postJSON[tokenPayload](ctx, s, pathConfirmAuthentication, device, cfg, body)
	if err != nil {
		return nil, err
	}
	if apiErr := s.classify(env.Code, env.Message, env.ErrorData); apiErr != nil {
		return nil, apiErr
	}

	return s.buildSession(&env.Data)
}

// SendMagicLink asks the backend to email a single-use login link.
func (s *Service) SendMagicLink(ctx context.Context, device types.DeviceInfo, cfg types.AuthConfig, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	env, err := postJSON[json.RawMessage](ctx, s, pathSendMagicLink, device, cfg, magicLinkSendRequest{Email: email})
	if err != nil {
		return err
	}
	if apiErr := s.classify(env.Code, env.Message, env.ErrorData); apiErr != nil {
		return apiErr
	}

	s.log.Info().Str("email", email).Msg("magic link sent")
	return nil
}

// AuthenticateWithToken exchanges a token extracted from a magic-link URL
// for a token pair, persisting the resulting session exactly like the OTP
// confirm step.
func (s *Service) AuthenticateWithToken(ctx context.Context, device types.DeviceInfo, cfg types.AuthConfig, token string) (*types.SessionInfo, error) {
	if token == "" {
		return nil, types.NewValidationError("magic link token is empty")
	}

	env, err := postJSON[tokenPayload](ctx, s, pathMagicLinkAuth, device, cfg, magicLinkAuthRequest{Token: token})
	if err != nil {
		return nil, err
	}
	if apiErr := s.classify(env.Code, env.Message, env.ErrorData); apiErr != nil {
		return nil, apiErr
	}

	return s.buildSession(&env.Data)
}

// buildSession decodes the issued access token to recover the driver
// identity, assembles the SessionInfo, and persists it.
func (s *Service) buildSession(payload *tokenPayload) (*types.SessionInfo, error) {
	if payload.Token.RefreshToken == "" {
		return nil, &types.APIError{
			Kind:    types.KindAuthentication,
			Message: "server response carried no refresh token",
		}
	}

	info := &types.SessionInfo{
		AccessToken:  payload.Token.AccessToken,
		RefreshToken: payload.Token.RefreshToken,
		TokenType:    payload.Token.TokenType,
	}
	if info.TokenType == "" {
		info.TokenType = "bearer"
	}

	if payload.Token.ExpiresInSeconds > 0 {
		info.ExpiresAt = s.now().Add(time.Duration(payload.Token.ExpiresInSeconds) * time.Second)
	}

	if payload.Token.AccessToken != "" {
		claims, err := DecodeAccessToken(payload.Token.AccessToken)
		if err != nil {
			return nil, err
		}
		info.DriverID = claims.DriverID
		info.PartnerID = claims.PartnerID
		info.CompanyID = claims.CompanyID
		info.CompanyCityID = claims.CompanyCityID
		info.SessionID = claims.SessionID
		if info.ExpiresAt.IsZero() && claims.ExpiresAt != nil {
			info.ExpiresAt = claims.ExpiresAt.Time
		}
	}
	if info.ExpiresAt.IsZero() {
		// The backend has always sent an expiry one way or the other; be
		// conservative if it ever does not.
		info.ExpiresAt = s.now().Add(24 * time.Hour)
	}

	if s.store != nil {
		if err := s.store.Save(info.RefreshToken, info); err != nil {
			// Persistence failure is not an auth failure: the session is
			// still good for this process.
			s.log.Error().Err(err).Msg("failed to persist session")
		}
	}

	s.log.Info().
		Int64("driver_id", info.DriverID).
		Int64("partner_id", info.PartnerID).
		Time("expires_at", info.ExpiresAt).
		Msg("authenticated")

	return info, nil
}

func (s *Service) classify(code int, message string, errData *types.ErrorData) *types.APIError {
	apiErr := types.ClassifyResponse(http.StatusOK, code, message, errData, nil)
	if apiErr != nil && s.store != nil && apiErr.Kind == types.KindNotAuthorized {
		_ = s.store.Clear()
	}
	return apiErr
}

// postJSON issues a POST to the auth host with the device and locale
// parameters in the query string and body as JSON, decoding the uniform
// response envelope.
func postJSON[T any](ctx context.Context, s *Service, path string, device types.DeviceInfo, cfg types.AuthConfig, body any) (*types.APIResponse[T], error) {
	ctx, span := s.tracer.Start(ctx, "bolt.auth"+path)
	defer span.End()

	query := url.Values{}
	device.ApplyQuery(query)
	cfg.ApplyQuery(query)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	reqURL := s.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := s.now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("auth request failed")
		return nil, fmt.Errorf("auth request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read auth response: %w", err)
	}

	s.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", s.now().Sub(start)).
		Msg("auth request completed")

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
		return nil, fmt.Errorf("decode auth response: %w", err)
	}

	// HTTP-level auth failures can arrive without an envelope code.
	if env.Code == types.CodeOK && resp.StatusCode != http.StatusOK {
		if apiErr := types.ClassifyResponse(resp.StatusCode, resp.StatusCode, env.Message, env.ErrorData, raw); apiErr != nil {
			return nil, apiErr
		}
	}

	return &env, nil
}
