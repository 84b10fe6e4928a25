package health_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/health"
)

type catalogUp struct{}

func (catalogUp) Ping(ctx context.Context) error { return nil }

func ExampleAggregator() {
	agg := health.NewAggregator()
	agg.Register("catalog", health.NewCatalogChecker(catalogUp{}, health.CatalogCheckerConfig{}))
	agg.Register("cache", health.NewCacheChecker(cache.NewMemoryCache(), health.CacheCheckerConfig{}))

	results := agg.CheckAll(context.Background())
	for _, name := range agg.CheckerNames() {
		fmt.Printf("%s: %s (%s)\n", name, results[name].Status, results[name].Message)
	}
	fmt.Println("overall:", agg.OverallStatus(results))
	// Output:
	// catalog: healthy (catalog reachable)
	// cache: healthy (0 details cached)
	// overall: healthy
}
