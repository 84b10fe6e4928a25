package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/jonwraymond/mealscout/recipe"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache   = errors.New("cache: cache is nil")
	ErrNilFetch   = errors.New("cache: fetch func is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")

	// ErrNotAttempted marks a FetchFunc error for a lookup that never left
	// the process, such as one turned away by a circuit breaker. Such
	// results are never cached.
	ErrNotAttempted = errors.New("cache: fetch not attempted")
)

// DetailCache maps recipe names to resolved details.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Keys: exact, case-sensitive recipe names.
// - Write-once: Store never replaces an existing entry; the first value wins.
// - Negative entries: a stored nil detail is a valid, remembered result.
// - Lifetime: no eviction and no expiry.
type DetailCache interface {
	// Lookup returns the cached detail and whether the key is present.
	// (nil, true) is a negative entry.
	Lookup(ctx context.Context, name string) (*recipe.Detail, bool)

	// Store records detail for name. It returns false when name is invalid
	// or already present.
	Store(ctx context.Context, name string, detail *recipe.Detail) bool

	// Len returns the number of entries, negative ones included.
	Len() int
}

// ValidateKey checks if a recipe name can be used as a cache key.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
