package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/mealscout/resilience"
)

// Pinger is a component that can confirm the catalog is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerState reports a circuit breaker state.
type BreakerState interface {
	State() resilience.State
}

// CatalogCheckerConfig configures the catalog health checker.
type CatalogCheckerConfig struct {
	// SlowThreshold marks a successful ping slower than this as degraded.
	// Default: 2 seconds
	SlowThreshold time.Duration

	// Breaker, when set, is consulted before pinging. An open breaker is
	// reported without calling the catalog.
	Breaker BreakerState
}

// CatalogChecker checks that the recipe catalog answers.
type CatalogChecker struct {
	pinger Pinger
	config CatalogCheckerConfig
}

// NewCatalogChecker creates a catalog checker.
func NewCatalogChecker(p Pinger, config CatalogCheckerConfig) *CatalogChecker {
	if config.SlowThreshold <= 0 {
		config.SlowThreshold = 2 * time.Second
	}
	return &CatalogChecker{pinger: p, config: config}
}

// Name returns the name of this checker.
func (c *CatalogChecker) Name() string {
	return "catalog"
}

// Check pings the catalog.
func (c *CatalogChecker) Check(ctx context.Context) Result {
	details := map[string]any{}

	if c.config.Breaker != nil {
		state := c.config.Breaker.State()
		details["breaker"] = state.String()
		switch state {
		case resilience.StateOpen:
			return Unhealthy("catalog circuit open", ErrCircuitOpen).WithDetails(details)
		case resilience.StateHalfOpen:
			return Degraded("catalog recovering").WithDetails(details)
		}
	}

	start := time.Now()
	err := c.pinger.Ping(ctx)
	latency := time.Since(start)
	details["latency_ms"] = latency.Milliseconds()

	if err != nil {
		return Unhealthy("catalog unreachable", fmt.Errorf("%w: %w", ErrCheckFailed, err)).WithDetails(details)
	}
	if latency > c.config.SlowThreshold {
		return Degraded(fmt.Sprintf("catalog slow: %s", latency.Round(time.Millisecond))).WithDetails(details)
	}
	return Healthy("catalog reachable").WithDetails(details)
}
