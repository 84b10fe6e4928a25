// Package cache memoizes recipe detail lookups for the lifetime of a
// session.
//
// It provides a write-once DetailCache with an in-memory implementation, a
// Policy deciding which failed lookups are remembered, and a Resolver that
// puts the cache in front of a catalog fetch and coalesces concurrent
// lookups of the same name.
//
// A cached nil detail means the lookup was attempted and yielded nothing;
// an absent key means it was never attempted.
package cache
