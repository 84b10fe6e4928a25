package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means calls flow normally.
	StateClosed State = iota
	// StateOpen means calls are rejected without reaching the catalog.
	StateOpen
	// StateHalfOpen means a limited number of probe calls are allowed.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

func fromGobreaker(s gobreaker.State) State {
	switch s {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs and state callbacks.
	// Default: "catalog"
	Name string

	// MaxFailures is the number of consecutive failures that opens the circuit.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long the circuit stays open before probing.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// HalfOpenMaxRequests is the max probe calls allowed while half-open.
	// Default: 1
	HalfOpenMaxRequests int

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)

	// IsFailure determines if an error counts toward opening the circuit.
	// Default: any non-nil error except context cancellation.
	IsFailure func(err error) bool
}

// CircuitBreaker wraps a gobreaker circuit breaker with a context-first API.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu sync.RWMutex
	cb *gobreaker.CircuitBreaker[struct{}]
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.Name == "" {
		config.Name = "catalog"
	}
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxRequests <= 0 {
		config.HalfOpenMaxRequests = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = defaultIsFailure
	}

	b := &CircuitBreaker{config: config}
	b.cb = b.newBreaker()
	return b
}

func defaultIsFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

func (b *CircuitBreaker) newBreaker() *gobreaker.CircuitBreaker[struct{}] {
	cfg := b.config
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(cfg.HalfOpenMaxRequests),
		Timeout:     cfg.ResetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.MaxFailures)
		},
		IsSuccessful: func(err error) bool {
			return !cfg.IsFailure(err)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(fromGobreaker(from), fromGobreaker(to))
			}
		},
	})
}

func (b *CircuitBreaker) breaker() *gobreaker.CircuitBreaker[struct{}] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cb
}

// Execute runs the operation through the circuit breaker.
// Rejected calls return ErrCircuitOpen and op is not invoked.
func (b *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	_, err := b.breaker().Execute(func() (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

// State returns the current circuit state.
func (b *CircuitBreaker) State() State {
	return fromGobreaker(b.breaker().State())
}

// Name returns the breaker name.
func (b *CircuitBreaker) Name() string {
	return b.config.Name
}

// Reset returns the circuit breaker to the closed state with zeroed counts.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()
	old := fromGobreaker(b.cb.State())
	b.cb = b.newBreaker()
	b.mu.Unlock()

	if old != StateClosed && b.config.OnStateChange != nil {
		b.config.OnStateChange(old, StateClosed)
	}
}

// Metrics returns current circuit breaker metrics.
func (b *CircuitBreaker) Metrics() CircuitBreakerMetrics {
	cb := b.breaker()
	counts := cb.Counts()
	return CircuitBreakerMetrics{
		State:     fromGobreaker(cb.State()),
		Requests:  int(counts.Requests),
		Failures:  int(counts.ConsecutiveFailures),
		Successes: int(counts.TotalSuccesses),
	}
}

// CircuitBreakerMetrics contains circuit breaker statistics for the
// current generation of counts.
type CircuitBreakerMetrics struct {
	State     State
	Requests  int
	Failures  int
	Successes int
}
