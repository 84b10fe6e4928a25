package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// DefaultAPIKeyHeader is the header read when APIKeyConfig.HeaderName is empty.
const DefaultAPIKeyHeader = "X-API-Key"

// APIKeyConfig configures API key authentication.
type APIKeyConfig struct {
	HeaderName string
}

// APIKeyAuthenticator accepts a fixed set of keys. Only SHA-256 digests of
// the keys are kept in memory.
type APIKeyAuthenticator struct {
	header string
	hashes [][sha256.Size]byte
}

// NewAPIKeyAuthenticator creates an authenticator for keys. Blank keys are
// ignored.
func NewAPIKeyAuthenticator(cfg APIKeyConfig, keys ...string) *APIKeyAuthenticator {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultAPIKeyHeader
	}
	a := &APIKeyAuthenticator{header: cfg.HeaderName}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			a.hashes = append(a.hashes, sha256.Sum256([]byte(k)))
		}
	}
	return a
}

// Len returns the number of accepted keys.
func (a *APIKeyAuthenticator) Len() int { return len(a.hashes) }

// Name returns "api_key".
func (a *APIKeyAuthenticator) Name() string { return string(MethodAPIKey) }

// Supports returns true if the request carries the key header.
func (a *APIKeyAuthenticator) Supports(h http.Header) bool {
	return h.Get(a.header) != ""
}

// Authenticate compares the presented key against every configured digest
// in constant time.
func (a *APIKeyAuthenticator) Authenticate(_ context.Context, h http.Header) (*Identity, error) {
	key := strings.TrimSpace(h.Get(a.header))
	if key == "" {
		return nil, ErrMissingCredentials
	}
	sum := sha256.Sum256([]byte(key))

	match := -1
	for i, want := range a.hashes {
		if subtle.ConstantTimeCompare(sum[:], want[:]) == 1 {
			match = i
		}
	}
	if match < 0 {
		return nil, fmt.Errorf("%w: unknown api key", ErrInvalidCredentials)
	}
	return &Identity{Principal: KeyID(key), Method: MethodAPIKey}, nil
}

// KeyID returns a short, non-reversible identifier for key, safe to log.
func KeyID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "key-" + hex.EncodeToString(sum[:4])
}

// Ensure APIKeyAuthenticator implements Authenticator
var _ Authenticator = (*APIKeyAuthenticator)(nil)
