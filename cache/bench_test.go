package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/jonwraymond/mealscout/recipe"
)

// BenchmarkMemoryCache_Lookup_Hit measures cache hit performance.
func BenchmarkMemoryCache_Lookup_Hit(b *testing.B) {
	c := NewMemoryCache()
	ctx := context.Background()
	c.Store(ctx, "key", &recipe.Detail{Name: "key"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Lookup(ctx, "key")
	}
}

// BenchmarkMemoryCache_Store measures write performance.
func BenchmarkMemoryCache_Store(b *testing.B) {
	c := NewMemoryCache()
	ctx := context.Background()
	d := &recipe.Detail{Name: "x"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Store(ctx, fmt.Sprintf("key-%d", i), d)
	}
}

// BenchmarkResolver_Hit measures resolution of an already cached name.
func BenchmarkResolver_Hit(b *testing.B) {
	fetch := func(ctx context.Context, name string) (*recipe.Detail, error) {
		return &recipe.Detail{Name: name}, nil
	}
	r := NewResolver(NewMemoryCache(), fetch, DefaultPolicy())
	ctx := context.Background()
	_, _, _ = r.Resolve(ctx, "warm")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = r.Resolve(ctx, "warm")
	}
}

// BenchmarkResolver_Parallel measures concurrent resolution of a hot name.
func BenchmarkResolver_Parallel(b *testing.B) {
	fetch := func(ctx context.Context, name string) (*recipe.Detail, error) {
		return &recipe.Detail{Name: name}, nil
	}
	r := NewResolver(NewMemoryCache(), fetch, DefaultPolicy())
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _, _ = r.Resolve(ctx, "hot")
		}
	})
}
