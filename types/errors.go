package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies an APIError into the failure classes callers branch
// on. The zero value is KindAuthentication, the generic auth-flow failure.
type ErrorKind int

const (
	// KindAuthentication is a generic failure during either auth flow.
	KindAuthentication ErrorKind = iota

	// KindValidation is malformed local input (phone, email, OTP code)
	// rejected before any network call. Never retried.
	KindValidation

	// KindInvalidPhone means the server rejected the phone number format
	// or registration.
	KindInvalidPhone

	// KindSmsLimit means the server is rate limiting OTP delivery.
	// Callers should cool down and retry, or switch to the magic-link flow.
	KindSmsLimit

	// KindInvalidSmsCode means the wrong OTP was entered. Callers may retry
	// with a new code without restarting the flow.
	KindInvalidSmsCode

	// KindDatabaseError is a backend-side storage failure unrelated to
	// caller input. Safe to retry with backoff.
	KindDatabaseError

	// KindServerError is any other backend-side failure (HTTP 5xx).
	KindServerError

	// KindNotAuthorized means the stored or cached token was rejected.
	// The token must be cleared locally and the caller re-authenticates.
	KindNotAuthorized
)

// String returns the kind name used in logs and error messages.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidPhone:
		return "invalid_phone"
	case KindSmsLimit:
		return "sms_limit"
	case KindInvalidSmsCode:
		return "invalid_sms_code"
	case KindDatabaseError:
		return "database_error"
	case KindServerError:
		return "server_error"
	case KindNotAuthorized:
		return "not_authorized"
	default:
		return "authentication"
	}
}

// APIError is the single error type the client surfaces for every backend
// and validation failure. It preserves the original server message and
// error_data.text when present.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       int
	Message    string
	ErrorText  string
	Raw        json.RawMessage
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("bolt: ")
	b.WriteString(e.Kind.String())
	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.ErrorText != "" {
		b.WriteString(": ")
		b.WriteString(e.ErrorText)
	}
	return b.String()
}

// Retryable reports whether a caller-level backoff may retry the operation
// that produced this error.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindSmsLimit, KindDatabaseError, KindServerError:
		return true
	default:
		return false
	}
}

// NewValidationError builds a local-input validation error. It never carries
// a server response and must not be logged as a server failure.
func NewValidationError(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg}
}

// NewNotAuthorizedError builds the fail-fast error returned when a request
// would be issued without a valid session.
func NewNotAuthorizedError(msg string) *APIError {
	return &APIError{
		Kind:       KindNotAuthorized,
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNotAuthorized,
		Message:    msg,
	}
}

// ClassifyResponse maps a decoded response envelope onto the error taxonomy.
// Returns nil for code 0.
func ClassifyResponse(status, code int, message string, errData *ErrorData, raw json.RawMessage) *APIError {
	if code == CodeOK {
		return nil
	}

	apiErr := &APIError{
		StatusCode: status,
		Code:       code,
		Message:    message,
		Raw:        raw,
	}
	if errData != nil {
		apiErr.ErrorText = errData.Text
	}
	apiErr.Kind = classifyKind(status, code, message)
	return apiErr
}

func classifyKind(status, code int, message string) ErrorKind {
	switch code {
	case CodeInvalidPhone:
		return KindInvalidPhone
	case CodeInvalidSmsCode:
		return KindInvalidSmsCode
	case CodeSmsLimitReached:
		return KindSmsLimit
	case CodeNotAuthorized:
		return KindNotAuthorized
	case CodeDatabaseError:
		return KindDatabaseError
	}

	msg := strings.ToUpper(message)
	switch {
	case strings.Contains(msg, "SMS_LIMIT"):
		return KindSmsLimit
	case strings.Contains(msg, "NOT_AUTHORIZED"):
		return KindNotAuthorized
	case strings.Contains(msg, "INVALID_PHONE"):
		return KindInvalidPhone
	case strings.Contains(msg, "INVALID_CODE"), strings.Contains(msg, "INCORRECT_CODE"):
		return KindInvalidSmsCode
	case strings.Contains(msg, "DATABASE"):
		return KindDatabaseError
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return KindNotAuthorized
	}
	if status >= http.StatusInternalServerError {
		return KindServerError
	}
	return KindAuthentication
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

// KindOf returns the kind of err, or (zero, false) when err is not an
// APIError.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}
	return apiErr.Kind, true
}
