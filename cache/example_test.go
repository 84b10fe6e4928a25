package cache_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/recipe"
)

func ExampleMemoryCache_Lookup() {
	c := cache.NewMemoryCache()
	ctx := context.Background()

	// Never attempted
	_, ok := c.Lookup(ctx, "Moussaka")
	fmt.Println("Attempted:", ok)

	// Attempted, nothing found
	c.Store(ctx, "Moussaka", nil)
	d, ok := c.Lookup(ctx, "Moussaka")
	fmt.Println("Attempted:", ok, "Detail:", d)
	// Output:
	// Attempted: false
	// Attempted: true Detail: <nil>
}

func ExampleResolver_Resolve() {
	calls := 0
	fetch := func(ctx context.Context, name string) (*recipe.Detail, error) {
		calls++
		return &recipe.Detail{Name: name, Area: "Greek"}, nil
	}

	r := cache.NewResolver(cache.NewMemoryCache(), fetch, cache.DefaultPolicy())
	ctx := context.Background()

	d, outcome, _ := r.Resolve(ctx, "Moussaka")
	fmt.Println(d.Area, outcome)

	_, outcome, _ = r.Resolve(ctx, "Moussaka")
	fmt.Println(outcome, "fetches:", calls)
	// Output:
	// Greek fetched
	// hit fetches: 1
}
