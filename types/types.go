// Package types holds the core records shared by the Bolt driver client:
// device identity, auth configuration, sessions, GPS fixes, and the uniform
// API response envelope.
package types

import (
	"time"

	"github.com/google/uuid"
)

// DeviceInfo identifies the (simulated) mobile device attached to every
// request. It is created once at client construction and never mutated.
type DeviceInfo struct {
	// DeviceUID is the unique device identifier sent as deviceId.
	DeviceUID string `env:"BOLT_DEVICE_UID"`

	// DeviceType is the platform identifier, e.g. "android" or "iphone".
	DeviceType string `env:"BOLT_DEVICE_TYPE" env-default:"android"`

	// DeviceName is the marketing name of the device model.
	DeviceName string `env:"BOLT_DEVICE_NAME" env-default:"Pixel 7"`

	// DeviceOSVersion is the OS version string, e.g. "13".
	DeviceOSVersion string `env:"BOLT_DEVICE_OS_VERSION" env-default:"13"`

	// AppVersion is the driver app version string, e.g. "DP.89.0".
	AppVersion string `env:"BOLT_APP_VERSION" env-default:"DP.89.0"`
}

// NewDeviceInfo returns a DeviceInfo with a freshly generated device UID and
// default platform fields.
func NewDeviceInfo() DeviceInfo {
	return DeviceInfo{
		DeviceUID:       uuid.NewString(),
		DeviceType:      "android",
		DeviceName:      "Pixel 7",
		DeviceOSVersion: "13",
		AppVersion:      "DP.89.0",
	}
}

// WithDefaults fills any empty fields from NewDeviceInfo.
func (d DeviceInfo) WithDefaults() DeviceInfo {
	def := NewDeviceInfo()
	if d.DeviceUID == "" {
		d.DeviceUID = def.DeviceUID
	}
	if d.DeviceType == "" {
		d.DeviceType = def.DeviceType
	}
	if d.DeviceName == "" {
		d.DeviceName = def.DeviceName
	}
	if d.DeviceOSVersion == "" {
		d.DeviceOSVersion = def.DeviceOSVersion
	}
	if d.AppVersion == "" {
		d.AppVersion = def.AppVersion
	}
	return d
}

// AuthConfig selects the auth flow and locale parameters sent with every
// request.
type AuthConfig struct {
	// AuthMethod is "phone" or "email".
	AuthMethod string `env:"BOLT_AUTH_METHOD" env-default:"phone"`

	// Brand is the app brand identifier.
	Brand string `env:"BOLT_BRAND" env-default:"bolt"`

	// Country is the ISO 3166-1 alpha-2 country code, lowercase.
	Country string `env:"BOLT_COUNTRY" env-default:"pl"`

	// Language is the BCP 47 language tag sent to the backend.
	Language string `env:"BOLT_LANGUAGE" env-default:"en-GB"`

	// Theme is the app theme the official client reports ("dark"/"light").
	Theme string `env:"BOLT_THEME" env-default:"dark"`
}

// GPSInfo is the location fix every data endpoint takes. Fields mirror the
// gps_* query parameters of the mobile app.
type GPSInfo struct {
	Latitude        float64
	Longitude       float64
	Accuracy        float64
	Bearing         float64
	Speed           float64
	Timestamp       int64
	Age             int64
	AdjustedBearing float64
	SpeedAccuracy   float64
}

// Credentials is the per-attempt scratch record accumulated while an auth
// flow progresses. It is created for one authentication attempt and
// discarded after success or failure.
type Credentials struct {
	Phone             string
	DriverID          int64
	SessionID         string
	VerificationToken string
	VerificationCode  string
}

// SessionInfo is the authenticated identity held by the client after a
// successful login or a stored-token load. It is replaced wholesale on
// re-authentication and cleared on logout or detected expiry.
type SessionInfo struct {
	SessionID     string    `json:"sessionId"`
	DriverID      int64     `json:"driverId"`
	PartnerID     int64     `json:"partnerId"`
	CompanyID     int64     `json:"companyId"`
	CompanyCityID int64     `json:"companyCityId"`
	AccessToken   string    `json:"accessToken"`
	RefreshToken  string    `json:"refreshToken"`
	TokenType     string    `json:"tokenType"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Valid reports whether the session has a refresh token and is not expired.
func (s *SessionInfo) Valid(now time.Time) bool {
	if s == nil || s.RefreshToken == "" {
		return false
	}
	return s.ExpiresAt.After(now)
}
