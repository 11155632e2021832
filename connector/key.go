package connector

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/jonwraymond/culrconnector/account"
)

// CacheKey identifies a cached lookup. Two keys are equal exactly when
// all five fields are equal; the caller's password is not part of it.
type CacheKey struct {
	AgencyID    string             `json:"agency"`
	UserIDType  account.UserIDType `json:"userIdType"`
	UserIDValue string             `json:"userIdValue"`
	UserIDAut   string             `json:"userIdAut"`
	GroupIDAut  string             `json:"groupIdAut"`
}

// DeriveKey builds the cache key for a lookup.
func DeriveKey(agencyID string, creds account.Credentials, auth account.AuthCredentials) CacheKey {
	return CacheKey{
		AgencyID:    agencyID,
		UserIDType:  creds.UserIDType,
		UserIDValue: creds.UserIDValue,
		UserIDAut:   auth.UserIDAut,
		GroupIDAut:  auth.GroupIDAut,
	}
}

// Fingerprint returns a short stable digest of the key for log output.
// Format: culr:<first 16 hex chars of SHA-256(JSON(key))>
func (k CacheKey) Fingerprint() string {
	// Struct fields marshal in declaration order, so the encoding is stable.
	data, err := json.Marshal(k)
	if err != nil {
		return "culr:unknown"
	}
	sum := sha256.Sum256(data)
	return "culr:" + hex.EncodeToString(sum[:8])
}
