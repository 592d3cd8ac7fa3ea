package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAPIKey is returned when an API key is malformed or does not verify
var ErrInvalidAPIKey = errors.New("invalid API key")

const (
	// APIKeyPrefix is the prefix for all workspace API keys
	APIKeyPrefix = "wd_"
	// apiKeySecretLength is the length of the random part of the key
	apiKeySecretLength = 32
)

// GenerateAPIKey creates a new API key for a workspace along with the bcrypt
// hash stored on the workspace row. The key embeds the workspace ID so the
// row can be found before the hash comparison.
func GenerateAPIKey(workspaceID uuid.UUID) (apiKey string, keyHash string, err error) {
	bytes := make([]byte, apiKeySecretLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}

	secret := strings.TrimRight(base64.URLEncoding.EncodeToString(bytes), "=")
	apiKey = APIKeyPrefix + workspaceID.String() + "_" + secret

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	return apiKey, string(hash), nil
}

// ParseAPIKey splits an API key into its workspace ID and secret
func ParseAPIKey(apiKey string) (uuid.UUID, string, error) {
	if !strings.HasPrefix(apiKey, APIKeyPrefix) {
		return uuid.Nil, "", ErrInvalidAPIKey
	}

	rest := strings.TrimPrefix(apiKey, APIKeyPrefix)
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 || idx == len(rest)-1 {
		return uuid.Nil, "", ErrInvalidAPIKey
	}

	workspaceID, err := uuid.Parse(rest[:idx])
	if err != nil {
		return uuid.Nil, "", ErrInvalidAPIKey
	}

	return workspaceID, rest[idx+1:], nil
}

// VerifyAPIKey compares a key's secret against the stored bcrypt hash
func VerifyAPIKey(keyHash, secret string) error {
	if keyHash == "" {
		return ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(secret)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// IsAPIKey reports whether a bearer credential looks like a workspace API key
// rather than a JWT.
func IsAPIKey(credential string) bool {
	return strings.HasPrefix(credential, APIKeyPrefix)
}
