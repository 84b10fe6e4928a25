package health

import (
	"context"
	"testing"

	"github.com/jonwraymond/mealscout/cache"
)

type fixedStats cache.Stats

func (s fixedStats) Stats() cache.Stats { return cache.Stats(s) }

func TestCacheChecker(t *testing.T) {
	tests := []struct {
		name  string
		stats cache.Stats
		want  Status
	}{
		{"empty", cache.Stats{}, StatusHealthy},
		{"mostly positive", cache.Stats{Entries: 20, Negative: 2, Hits: 40, Misses: 20}, StatusHealthy},
		{"mostly negative", cache.Stats{Entries: 20, Negative: 15}, StatusDegraded},
		{"too few entries to judge", cache.Stats{Entries: 4, Negative: 4}, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCacheChecker(fixedStats(tt.stats), CacheCheckerConfig{})
			r := c.Check(context.Background())
			if r.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", r.Status, tt.want, r.Message)
			}
			if r.Details["entries"] != tt.stats.Entries {
				t.Errorf("entries = %v, want %d", r.Details["entries"], tt.stats.Entries)
			}
		})
	}
}

func TestCacheChecker_LiveCache(t *testing.T) {
	mc := cache.NewMemoryCache()
	ctx := context.Background()
	mc.Store(ctx, "Pizza", nil)
	mc.Lookup(ctx, "Pizza")
	mc.Lookup(ctx, "Calzone")

	r := NewCacheChecker(mc, CacheCheckerConfig{}).Check(ctx)
	if r.Details["hit_ratio"] != 0.5 {
		t.Errorf("hit_ratio = %v, want 0.5", r.Details["hit_ratio"])
	}
	if r.Details["negative"] != 1 {
		t.Errorf("negative = %v, want 1", r.Details["negative"])
	}
}

func TestCacheChecker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewCacheChecker(fixedStats{}, CacheCheckerConfig{}).Check(ctx)
	if r.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", r.Status)
	}
}
