package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("admin-signing-secret")

func mustSign(t *testing.T, secret []byte, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := SignToken(secret, claims)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	return tok
}

func bearer(tok string) http.Header {
	return header("Authorization", "Bearer "+tok)
}

func TestJWTAuthenticator_Supports(t *testing.T) {
	a := NewJWTAuthenticator(JWTConfig{Secret: testSecret})

	tests := []struct {
		name string
		h    http.Header
		want bool
	}{
		{"none", header(), false},
		{"bearer", header("Authorization", "Bearer abc"), true},
		{"lowercase scheme", header("Authorization", "bearer abc"), true},
		{"basic", header("Authorization", "Basic abc"), false},
		{"empty token", header("Authorization", "Bearer  "), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Supports(tt.h); got != tt.want {
				t.Errorf("Supports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJWTAuthenticator_Authenticate(t *testing.T) {
	now := time.Now()
	a := NewJWTAuthenticator(JWTConfig{Secret: testSecret, Issuer: "mealscout", Audience: "admin"})

	valid := jwt.RegisteredClaims{
		Subject:   "ops",
		Issuer:    "mealscout",
		Audience:  jwt.ClaimStrings{"admin"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	with := func(edit func(*jwt.RegisteredClaims)) jwt.RegisteredClaims {
		c := valid
		edit(&c)
		return c
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid", mustSign(t, testSecret, valid), nil},
		{"expired", mustSign(t, testSecret, with(func(c *jwt.RegisteredClaims) {
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
		})), ErrTokenExpired},
		{"wrong issuer", mustSign(t, testSecret, with(func(c *jwt.RegisteredClaims) {
			c.Issuer = "someone-else"
		})), ErrInvalidCredentials},
		{"wrong audience", mustSign(t, testSecret, with(func(c *jwt.RegisteredClaims) {
			c.Audience = jwt.ClaimStrings{"public"}
		})), ErrInvalidCredentials},
		{"no subject", mustSign(t, testSecret, with(func(c *jwt.RegisteredClaims) {
			c.Subject = ""
		})), ErrInvalidCredentials},
		{"wrong secret", mustSign(t, []byte("other"), valid), ErrInvalidCredentials},
		{"garbage", "not-a-jwt", ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := a.Authenticate(context.Background(), bearer(tt.token))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if id.Principal != "ops" || id.Method != MethodJWT {
				t.Errorf("identity = %+v", id)
			}
			if id.IsExpired(now) {
				t.Error("fresh token reported expired")
			}
		})
	}
}

func TestJWTAuthenticator_RejectsOtherAlgorithms(t *testing.T) {
	a := NewJWTAuthenticator(JWTConfig{Secret: testSecret})
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "ops"}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Authenticate(context.Background(), bearer(tok)); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestNewJWTAuthenticator_PanicsWithoutSecret(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewJWTAuthenticator(JWTConfig{})
}
