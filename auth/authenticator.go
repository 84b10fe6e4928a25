package auth

import (
	"context"
	"errors"
	"net/http"
)

// Authenticator validates request credentials.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Supports is a cheap header check; Authenticate is only called when it
//   returns true.
// - Errors: Authenticate returns an error wrapping one of the package
//   sentinels when the credentials are rejected.
type Authenticator interface {
	Name() string
	Supports(h http.Header) bool
	Authenticate(ctx context.Context, h http.Header) (*Identity, error)
}

// Chain tries authenticators in order and returns the first success.
type Chain []Authenticator

// NewChain builds a chain, skipping nil authenticators.
func NewChain(auths ...Authenticator) Chain {
	c := make(Chain, 0, len(auths))
	for _, a := range auths {
		if a != nil {
			c = append(c, a)
		}
	}
	return c
}

// Name returns "chain".
func (c Chain) Name() string { return "chain" }

// Supports reports whether any member supports the request.
func (c Chain) Supports(h http.Header) bool {
	for _, a := range c {
		if a.Supports(h) {
			return true
		}
	}
	return false
}

// Authenticate returns the first successful identity. When every supporting
// member fails, the last failure is returned.
func (c Chain) Authenticate(ctx context.Context, h http.Header) (*Identity, error) {
	if len(c) == 0 {
		return nil, ErrNoAuthenticators
	}
	err := ErrMissingCredentials
	for _, a := range c {
		if !a.Supports(h) {
			continue
		}
		id, aerr := a.Authenticate(ctx, h)
		if aerr == nil {
			return id, nil
		}
		if errors.Is(aerr, context.Canceled) || errors.Is(aerr, context.DeadlineExceeded) {
			return nil, aerr
		}
		err = aerr
	}
	return nil, err
}

// Ensure Chain implements Authenticator
var _ Authenticator = Chain(nil)
