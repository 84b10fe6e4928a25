// Package catalog is the client for the remote recipe catalog, a
// TheMealDB-compatible JSON API.
//
// Three read operations are offered in two forms. The strict form
// (Regions, ListByRegion, DetailByName) returns typed errors so callers can
// tell a missing recipe (ErrNotFound) from a catalog that could not be
// reached or understood (ErrTransport, ErrDecode). The fail-soft form
// (FailSoft, or the Soft* methods on Client) logs any failure and returns
// an empty result, which is what a browsing UI wants.
//
// Calls are never retried. Each call runs through an optional
// resilience.Executor and is traced, measured and logged by an
// observe.Middleware.
package catalog
