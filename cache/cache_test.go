package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/jonwraymond/mealscout/recipe"
)

// TestCacheKey_Validation tests key validation rules.
func TestCacheKey_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"empty key", "", ErrInvalidKey},
		{"valid key", "Chicken Curry", nil},
		{"too long", strings.Repeat("x", MaxKeyLength+1), ErrKeyTooLong},
		{"contains newline", "Chicken\nCurry", ErrInvalidKey},
		{"contains carriage return", "Chicken\rCurry", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"max length exactly", strings.Repeat("x", MaxKeyLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if err != tt.wantErr {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

// TestDetailCacheInterface_CompileCheck verifies the DetailCache contract
// can be satisfied by a test double.
func TestDetailCacheInterface_CompileCheck(t *testing.T) {
	var _ DetailCache = (*mockCache)(nil)
}

type mockCache struct{}

func (m *mockCache) Lookup(ctx context.Context, name string) (*recipe.Detail, bool) {
	return nil, false
}

func (m *mockCache) Store(ctx context.Context, name string, detail *recipe.Detail) bool {
	return false
}

func (m *mockCache) Len() int { return 0 }

// TestSentinelErrors verifies sentinel errors are distinct and have expected messages.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrNilCache", ErrNilCache, "cache: cache is nil"},
		{"ErrNilFetch", ErrNilFetch, "cache: fetch func is nil"},
		{"ErrInvalidKey", ErrInvalidKey, "cache: key is invalid"},
		{"ErrKeyTooLong", ErrKeyTooLong, "cache: key exceeds max length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.wantMsg)
			}
		})
	}
}
