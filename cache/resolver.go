package cache

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/mealscout/recipe"
)

// FetchFunc loads a recipe detail from the catalog.
//
// It returns (nil, nil) when the catalog has no such recipe and a non-nil
// error when the lookup itself failed. An error wrapping ErrNotAttempted
// means no lookup took place.
type FetchFunc func(ctx context.Context, name string) (*recipe.Detail, error)

// Outcome describes how a resolution was satisfied.
type Outcome int

const (
	// OutcomeHit means the cache already held an entry (possibly negative).
	OutcomeHit Outcome = iota
	// OutcomeFetched means the catalog returned a detail.
	OutcomeFetched
	// OutcomeNotFound means the catalog had no record.
	OutcomeNotFound
	// OutcomeFailed means the fetch failed.
	OutcomeFailed
	// OutcomeCanceled means the caller gave up before a result arrived.
	OutcomeCanceled
	// OutcomeRejected means the fetch was refused before reaching the
	// catalog. It is never cached.
	OutcomeRejected
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeFetched:
		return "fetched"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// LookupHook observes each completed resolution.
type LookupHook func(ctx context.Context, name string, outcome Outcome, err error)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLookupHook registers a hook called after every resolution.
func WithLookupHook(hook LookupHook) ResolverOption {
	return func(r *Resolver) {
		r.hook = hook
	}
}

// Resolver puts a DetailCache in front of a FetchFunc.
//
// On a hit the cached value is returned without calling fetch. On a miss
// fetch is called and its result stored according to the Policy.
// Concurrent misses for the same name share one fetch, so a name is
// fetched at most once while its result is cacheable.
//
// Names that ValidateKey rejects (blank, longer than MaxKeyLength or
// containing a line break) are never cached. Concurrent lookups of such a
// name still share one fetch, but every later resolution fetches again.
type Resolver struct {
	cache  DetailCache
	fetch  FetchFunc
	policy Policy
	hook   LookupHook
	group  singleflight.Group
}

// NewResolver creates a resolver. It panics if c or fetch is nil.
func NewResolver(c DetailCache, fetch FetchFunc, policy Policy, opts ...ResolverOption) *Resolver {
	if c == nil {
		panic(ErrNilCache)
	}
	if fetch == nil {
		panic(ErrNilFetch)
	}
	r := &Resolver{
		cache:  c,
		fetch:  fetch,
		policy: policy,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the underlying cache.
func (r *Resolver) Cache() DetailCache {
	return r.cache
}

type flight struct {
	detail  *recipe.Detail
	outcome Outcome
	err     error
}

// Resolve returns the detail for name, consulting the cache first.
//
// The returned detail is nil for every outcome except OutcomeFetched and
// positive hits. err is set only for OutcomeFailed, OutcomeRejected and
// OutcomeCanceled.
// A shared fetch keeps running after its callers are canceled so its
// result still reaches the cache.
func (r *Resolver) Resolve(ctx context.Context, name string) (*recipe.Detail, Outcome, error) {
	if err := ctx.Err(); err != nil {
		r.observe(ctx, name, OutcomeCanceled, err)
		return nil, OutcomeCanceled, err
	}

	cacheable := ValidateKey(name) == nil
	if cacheable {
		if detail, ok := r.cache.Lookup(ctx, name); ok {
			r.observe(ctx, name, OutcomeHit, nil)
			return detail, OutcomeHit, nil
		}
	}

	ch := r.group.DoChan(name, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if !cacheable {
			return r.load(fctx, name), nil
		}

		// Another flight may have finished between our miss and this call.
		if detail, ok := r.cache.Lookup(fctx, name); ok {
			return flight{detail: detail, outcome: OutcomeHit}, nil
		}

		f := r.load(fctx, name)
		if r.policy.ShouldStore(f.outcome) {
			r.cache.Store(fctx, name, f.detail)
		}
		return f, nil
	})

	select {
	case <-ctx.Done():
		r.observe(ctx, name, OutcomeCanceled, ctx.Err())
		return nil, OutcomeCanceled, ctx.Err()
	case res := <-ch:
		f := res.Val.(flight)
		r.observe(ctx, name, f.outcome, f.err)
		return f.detail, f.outcome, f.err
	}
}

func (r *Resolver) load(ctx context.Context, name string) flight {
	detail, err := r.fetch(ctx, name)
	switch {
	case errors.Is(err, ErrNotAttempted):
		return flight{outcome: OutcomeRejected, err: err}
	case err != nil:
		return flight{outcome: OutcomeFailed, err: err}
	case detail == nil:
		return flight{outcome: OutcomeNotFound}
	default:
		return flight{detail: detail, outcome: OutcomeFetched}
	}
}

func (r *Resolver) observe(ctx context.Context, name string, o Outcome, err error) {
	if r.hook != nil {
		r.hook(ctx, name, o, err)
	}
}
