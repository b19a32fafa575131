package types

import "encoding/json"

// Response codes the backend is known to return. Code 0 means success even
// when the HTTP status is 200; any other value is an application-level error.
const (
	CodeOK              = 0
	CodeInvalidPhone    = 293
	CodeInvalidSmsCode  = 298
	CodeSmsLimitReached = 299
	CodeNotAuthorized   = 503
	CodeDatabaseError   = 1000
)

// ErrorData carries the optional server-side error details attached to a
// failed response.
type ErrorData struct {
	Text       string `json:"text,omitempty"`
	TitleText  string `json:"title_text,omitempty"`
	RetryAfter int    `json:"retry_after_seconds,omitempty"`
}

// APIResponse is the uniform envelope most endpoints return.
type APIResponse[T any] struct {
	Code      int        `json:"code"`
	Message   string     `json:"message"`
	Data      T          `json:"data"`
	ErrorData *ErrorData `json:"error_data,omitempty"`
}

// OK reports whether the response denotes application-level success.
func (r *APIResponse[T]) OK() bool {
	return r.Code == CodeOK
}

// RawResponse is an envelope whose payload is left undecoded. Used when the
// caller only cares about the response code, or wants the body verbatim.
type RawResponse = APIResponse[json.RawMessage]
