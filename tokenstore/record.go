package tokenstore

import (
	"encoding/json"
	"time"

	"github.com/boltdriver/boltdriver-go/types"
)

// storedDocument is the canonical on-disk shape.
type storedDocument struct {
	Token       string             `json:"token"`
	SessionInfo *types.SessionInfo `json:"sessionInfo"`
	SavedAt     string             `json:"savedAt"`
	ExpiresAt   int64              `json:"expiresAt"` // epoch milliseconds
}

// legacyDocument is the flat shape older tooling wrote: token fields and
// driver identity at the top level, expiry in seconds or milliseconds.
type legacyDocument struct {
	RefreshToken  string `json:"refresh_token"`
	AccessToken   string `json:"access_token"`
	TokenType     string `json:"token_type"`
	SessionID     string `json:"session_id"`
	DriverID      int64  `json:"driver_id"`
	PartnerID     int64  `json:"partner_id"`
	CompanyID     int64  `json:"company_id"`
	CompanyCityID int64  `json:"company_city_id"`
	ExpiresAt     int64  `json:"expires_at"`
}

// normalize converts a raw persisted document into a SessionInfo, trying the
// known shapes in order and returning the first match. Returns ErrNoToken
// when no shape matches or the entry has expired.
func normalize(raw []byte, now time.Time) (string, *types.SessionInfo, error) {
	if token, info, ok := normalizeCanonical(raw); ok {
		if !info.ExpiresAt.After(now) {
			return "", nil, ErrNoToken
		}
		return token, info, nil
	}
	if token, info, ok := normalizeLegacy(raw); ok {
		if !info.ExpiresAt.After(now) {
			return "", nil, ErrNoToken
		}
		return token, info, nil
	}
	return "", nil, ErrNoToken
}

func normalizeCanonical(raw []byte) (string, *types.SessionInfo, bool) {
	var doc storedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil, false
	}
	if doc.Token == "" || doc.SessionInfo == nil {
		return "", nil, false
	}

	info := *doc.SessionInfo
	if info.ExpiresAt.IsZero() && doc.ExpiresAt > 0 {
		info.ExpiresAt = time.UnixMilli(doc.ExpiresAt)
	}
	if info.RefreshToken == "" {
		info.RefreshToken = doc.Token
	}
	return doc.Token, &info, true
}

func normalizeLegacy(raw []byte) (string, *types.SessionInfo, bool) {
	var doc legacyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil, false
	}
	if doc.RefreshToken == "" {
		return "", nil, false
	}

	tokenType := doc.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return doc.RefreshToken, &types.SessionInfo{
		SessionID:     doc.SessionID,
		DriverID:      doc.DriverID,
		PartnerID:     doc.PartnerID,
		CompanyID:     doc.CompanyID,
		CompanyCityID: doc.CompanyCityID,
		AccessToken:   doc.AccessToken,
		RefreshToken:  doc.RefreshToken,
		TokenType:     tokenType,
		ExpiresAt:     epochToTime(doc.ExpiresAt),
	}, true
}

// epochToTime accepts either epoch seconds or epoch milliseconds; legacy
// files exist with both.
func epochToTime(v int64) time.Time {
	if v <= 0 {
		return time.Time{}
	}
	// Values this large can only be milliseconds (seconds would place them
	// tens of thousands of years out).
	if v >= 1e12 {
		return time.UnixMilli(v)
	}
	return time.Unix(v, 0)
}

// encode builds the canonical document for writing.
func encode(token string, info *types.SessionInfo, now time.Time) ([]byte, error) {
	doc := storedDocument{
		Token:       token,
		SessionInfo: info,
		SavedAt:     now.UTC().Format(time.RFC3339),
		ExpiresAt:   info.ExpiresAt.UnixMilli(),
	}
	return json.MarshalIndent(doc, "", "  ")
}
