package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/mealscout/resilience"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixedState resilience.State

func (s fixedState) State() resilience.State { return resilience.State(s) }

func TestCatalogChecker(t *testing.T) {
	errRefused := errors.New("connection refused")

	tests := []struct {
		name       string
		ping       pingFunc
		breaker    BreakerState
		slow       time.Duration
		want       Status
		wantErr    error
		wantPinged bool
	}{
		{
			name:       "reachable",
			ping:       func(ctx context.Context) error { return nil },
			want:       StatusHealthy,
			wantPinged: true,
		},
		{
			name:       "unreachable",
			ping:       func(ctx context.Context) error { return errRefused },
			want:       StatusUnhealthy,
			wantErr:    errRefused,
			wantPinged: true,
		},
		{
			name: "slow",
			ping: func(ctx context.Context) error {
				time.Sleep(15 * time.Millisecond)
				return nil
			},
			slow:       5 * time.Millisecond,
			want:       StatusDegraded,
			wantPinged: true,
		},
		{
			name:    "breaker open skips ping",
			ping:    func(ctx context.Context) error { return nil },
			breaker: fixedState(resilience.StateOpen),
			want:    StatusUnhealthy,
			wantErr: ErrCircuitOpen,
		},
		{
			name:    "breaker half-open",
			ping:    func(ctx context.Context) error { return nil },
			breaker: fixedState(resilience.StateHalfOpen),
			want:    StatusDegraded,
		},
		{
			name:       "breaker closed pings",
			ping:       func(ctx context.Context) error { return nil },
			breaker:    fixedState(resilience.StateClosed),
			want:       StatusHealthy,
			wantPinged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinged := false
			p := pingFunc(func(ctx context.Context) error {
				pinged = true
				return tt.ping(ctx)
			})
			c := NewCatalogChecker(p, CatalogCheckerConfig{SlowThreshold: tt.slow, Breaker: tt.breaker})

			r := c.Check(context.Background())
			if r.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", r.Status, tt.want, r.Message)
			}
			if tt.wantErr != nil && !errors.Is(r.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", r.Error, tt.wantErr)
			}
			if pinged != tt.wantPinged {
				t.Errorf("pinged = %v, want %v", pinged, tt.wantPinged)
			}
		})
	}
}

func TestCatalogChecker_Defaults(t *testing.T) {
	c := NewCatalogChecker(pingFunc(func(context.Context) error { return nil }), CatalogCheckerConfig{})
	if c.Name() != "catalog" {
		t.Errorf("Name() = %q", c.Name())
	}
	if c.config.SlowThreshold != 2*time.Second {
		t.Errorf("SlowThreshold = %v, want 2s", c.config.SlowThreshold)
	}
}
