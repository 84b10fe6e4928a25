package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/mealscout/cache"
)

// CacheStatser exposes detail cache statistics.
type CacheStatser interface {
	Stats() cache.Stats
}

// CacheCheckerConfig configures the cache health checker.
type CacheCheckerConfig struct {
	// NegativeThreshold is the share of negative entries that marks the
	// cache degraded. A high share usually means the catalog has been
	// failing while failures are being remembered.
	// Value should be between 0 and 1. Default: 0.5
	NegativeThreshold float64

	// MinEntries is the entry count below which the ratio is not judged.
	// Default: 10
	MinEntries int
}

// CacheChecker reports detail cache usage.
type CacheChecker struct {
	source CacheStatser
	config CacheCheckerConfig
}

// NewCacheChecker creates a cache checker.
func NewCacheChecker(source CacheStatser, config CacheCheckerConfig) *CacheChecker {
	if config.NegativeThreshold <= 0 || config.NegativeThreshold > 1 {
		config.NegativeThreshold = 0.5
	}
	if config.MinEntries <= 0 {
		config.MinEntries = 10
	}
	return &CacheChecker{source: source, config: config}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "cache"
}

// Check inspects cache statistics.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	s := c.source.Stats()
	var hitRatio, negRatio float64
	if lookups := s.Hits + s.Misses; lookups > 0 {
		hitRatio = float64(s.Hits) / float64(lookups)
	}
	if s.Entries > 0 {
		negRatio = float64(s.Negative) / float64(s.Entries)
	}

	details := map[string]any{
		"entries":        s.Entries,
		"negative":       s.Negative,
		"hits":           s.Hits,
		"misses":         s.Misses,
		"hit_ratio":      hitRatio,
		"negative_ratio": negRatio,
	}

	if s.Entries >= c.config.MinEntries && negRatio >= c.config.NegativeThreshold {
		return Degraded(fmt.Sprintf("%.0f%% of cached details are negative", negRatio*100)).WithDetails(details)
	}
	return Healthy(fmt.Sprintf("%d details cached", s.Entries)).WithDetails(details)
}
