// Package resilience guards calls to the remote recipe catalog.
//
// The catalog is a third-party HTTP service with no SLA. These wrappers
// keep a slow or failing catalog from stalling a browsing session, and
// they never retry: a failed call is reported once and the caller decides
// what to show.
//
// # Patterns
//
//   - Circuit Breaker: stops calling the catalog after consecutive
//     failures, backed by github.com/sony/gobreaker/v2.
//
//   - Rate Limiter: token bucket over golang.org/x/time/rate.
//
//   - Bulkhead: bounds concurrent calls with golang.org/x/sync/semaphore.
//
//   - Timeout: bounds a single call.
//
// # Usage
//
//	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:         "catalog",
//	    MaxFailures:  5,
//	    ResetTimeout: 30 * time.Second,
//	})
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{
//	    Rate:        5,
//	    Burst:       10,
//	    WaitOnLimit: true,
//	})
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(cb),
//	    resilience.WithRateLimiter(rl),
//	    resilience.WithTimeout(10*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fetchRegions(ctx)
//	})
package resilience
