// Package auth implements the two authentication flows of the Bolt partner
// driver backend: phone number + SMS one-time code, and emailed magic link.
// A successful flow yields a types.SessionInfo which is persisted through
// the injected token store.
package auth

// Auth host endpoint paths.
const (
	pathStartAuthentication   = "/startAuthentication"
	pathConfirmAuthentication = "/confirmAuthentication"
	pathSendMagicLink         = "/sendMagicLink"
	pathMagicLinkAuth         = "/authenticateWithMagicLink"
)

// OTPChallenge describes the verification the server started after a
// successful StartPhoneAuth: where the code went and what to expect.
type OTPChallenge struct {
	// VerificationToken must be echoed back on confirm.
	VerificationToken string

	// Channel the code was delivered on, normally "sms".
	Channel string

	// Target is the masked phone number the code was sent to.
	Target string

	// CodeLength is the expected number of digits.
	CodeLength int

	// ResendWaitSeconds is how long to wait before requesting another code.
	ResendWaitSeconds int
}

// startAuthRequest is the body of POST /startAuthentication.
type startAuthRequest struct {
	Phone             string `json:"phone"`
	PhoneAreaCodeAuto bool   `json:"phone_area_code_auto"`
	AuthMethod        string `json:"type"`
}

// startAuthData is the payload of a successful start response.
type startAuthData struct {
	VerificationToken     string `json:"verification_token"`
	VerificationChannel   string `json:"verification_code_channel"`
	VerificationTarget    string `json:"verification_code_target"`
	VerificationLength    int    `json:"verification_code_length"`
	ResendWaitTimeSeconds int    `json:"resend_wait_time_in_seconds"`
}

// confirmAuthRequest is the body of POST /confirmAuthentication.
type confirmAuthRequest struct {
	VerificationToken string `json:"verification_token"`
	Code              string `json:"verification_code"`
}

// magicLinkSendRequest is the body of POST /sendMagicLink.
type magicLinkSendRequest struct {
	Email string `json:"email"`
}

// magicLinkAuthRequest is the body of POST /authenticateWithMagicLink.
type magicLinkAuthRequest struct {
	Token string `json:"token"`
}

// tokenPayload is the token pair the backend returns from both confirm
// endpoints.
type tokenPayload struct {
	Token struct {
		RefreshToken     string `json:"refresh_token"`
		AccessToken      string `json:"access_token"`
		TokenType        string `json:"token_type"`
		ExpiresInSeconds int64  `json:"expires_in"`
	} `json:"token"`
}
