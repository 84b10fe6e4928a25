// Package health reports whether mealscout can serve browsing sessions.
//
// A Checker reports one component's Status: Healthy, Degraded, or
// Unhealthy. CatalogChecker probes the remote recipe catalog and its
// circuit breaker; CacheChecker inspects the detail cache. An Aggregator
// combines checkers, and the HTTP handlers expose the result on a chi
// router for liveness and readiness probes.
//
// # Basic Usage
//
//	agg := health.NewAggregator()
//	agg.Register("catalog", health.NewCatalogChecker(client, health.CatalogCheckerConfig{}))
//	agg.Register("cache", health.NewCacheChecker(detailCache, health.CacheCheckerConfig{}))
//
//	r := chi.NewRouter()
//	health.RegisterRoutes(r, agg)
package health
