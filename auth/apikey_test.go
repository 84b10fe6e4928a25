package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestAPIKeyAuthenticator_Supports(t *testing.T) {
	a := NewAPIKeyAuthenticator(APIKeyConfig{}, "k1")

	tests := []struct {
		name string
		h    http.Header
		want bool
	}{
		{"no header", header(), false},
		{"default header", header("X-API-Key", "k1"), true},
		{"bearer only", header("Authorization", "Bearer x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Supports(tt.h); got != tt.want {
				t.Errorf("Supports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIKeyAuthenticator_Authenticate(t *testing.T) {
	a := NewAPIKeyAuthenticator(APIKeyConfig{HeaderName: "X-Admin-Key"}, "alpha", " ", "beta")
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (blank keys ignored)", a.Len())
	}

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"first key", "alpha", nil},
		{"second key", "beta", nil},
		{"surrounding space", "  beta ", nil},
		{"unknown key", "gamma", ErrInvalidCredentials},
		{"empty", "", ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := a.Authenticate(context.Background(), header("X-Admin-Key", tt.key))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if id.Method != MethodAPIKey {
				t.Errorf("Method = %q, want %q", id.Method, MethodAPIKey)
			}
			if id.Principal != KeyID(strings.TrimSpace(tt.key)) {
				t.Errorf("Principal = %q, want %q", id.Principal, KeyID(tt.key))
			}
		})
	}
}

func TestKeyID_DoesNotLeakKey(t *testing.T) {
	id := KeyID("super-secret-value")
	if strings.Contains(id, "secret") {
		t.Errorf("KeyID() = %q leaks the key", id)
	}
	if id != KeyID("super-secret-value") {
		t.Error("KeyID() is not stable")
	}
	if id == KeyID("other") {
		t.Error("KeyID() collides for different keys")
	}
}
