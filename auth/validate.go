package auth

import (
	"fmt"
	"regexp"

	"github.com/boltdriver/boltdriver-go/types"
)

var (
	// phonePattern is E.164: leading +, 7 to 15 digits.
	phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// ValidatePhone checks phone against the E.164 shape the backend expects.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return types.NewValidationError("phone number must be in international format, e.g. +48123456789")
	}
	return nil
}

// ValidateEmail checks the rough shape of an email address before sending a
// magic link.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return types.NewValidationError("email address is not valid")
	}
	return nil
}

// ValidateOTPCode checks the user-entered code locally: it must be exactly
// expectedLength digits. Anything else never reaches the server.
func ValidateOTPCode(code string, expectedLength int) error {
	if expectedLength <= 0 {
		expectedLength = DefaultOTPLength
	}
	if len(code) != expectedLength {
		return types.NewValidationError(fmt.Sprintf("verification code must be %d digits", expectedLength))
	}
	if !digitsPattern.MatchString(code) {
		return types.NewValidationError("verification code must contain only digits")
	}
	return nil
}

// DefaultOTPLength is the code length the backend uses when the challenge
// does not say otherwise.
const DefaultOTPLength = 6
