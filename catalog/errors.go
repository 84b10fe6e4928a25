package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates the catalog has no recipe for the requested name.
	ErrNotFound = errors.New("catalog: recipe not found")

	// ErrTransport indicates the catalog could not be reached or answered
	// with a non-success status.
	ErrTransport = errors.New("catalog: transport failure")

	// ErrDecode indicates the catalog answered with a body that is not the
	// expected JSON shape.
	ErrDecode = errors.New("catalog: malformed response")

	// ErrInvalidRegion indicates a blank region was passed to ListByRegion.
	ErrInvalidRegion = errors.New("catalog: region is blank")

	// ErrInvalidConfig indicates the client configuration is unusable.
	ErrInvalidConfig = errors.New("catalog: invalid config")
)

// Error describes a failed catalog operation.
type Error struct {
	Op     string // operation, e.g. "detail_by_name"
	Name   string // region or recipe name, when the call had one
	Status int    // HTTP status, when the catalog answered
	Err    error
}

func (e *Error) Error() string {
	msg := "catalog " + e.Op
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the recipe does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// CountsAsFailure reports whether err should count against the catalog's
// circuit breaker. Misses and caller cancellation do not.
func CountsAsFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrInvalidRegion) &&
		!errors.Is(err, context.Canceled)
}
