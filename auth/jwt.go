package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boltdriver/boltdriver-go/types"
)

// AccessClaims are the claims the backend puts into the access tokens it
// issues. The driver and partner identity ride along in the token, saving a
// round trip after login.
type AccessClaims struct {
	jwt.RegisteredClaims

	DriverID      int64  `json:"driver_id"`
	PartnerID     int64  `json:"partner_id"`
	CompanyID     int64  `json:"company_id"`
	CompanyCityID int64  `json:"company_city_id"`
	SessionID     string `json:"session_id"`
}

// DecodeAccessToken extracts the claims from an access token without
// verifying the signature. The client never holds the signing key; only the
// issuing backend can verify.
func DecodeAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, &types.APIError{
			Kind:    types.KindAuthentication,
			Message: fmt.Sprintf("malformed access token: %s", err),
		}
	}
	return claims, nil
}
