package secret

import "errors"

// Sentinel errors for secret resolution.
var (
	// ErrMissingEnv is returned when ${VAR} names an unset variable.
	ErrMissingEnv = errors.New("secret: missing environment variables")

	// ErrProviderNotRegistered is returned for references to unknown providers.
	ErrProviderNotRegistered = errors.New("secret: provider not registered")

	// ErrEmptySecret is returned in strict mode when a provider yields "".
	ErrEmptySecret = errors.New("secret: provider returned empty value")

	// ErrNotFound is returned by a provider that has no value for a ref.
	ErrNotFound = errors.New("secret: not found")

	// ErrInvalidRegistration is returned for a blank name or nil factory.
	ErrInvalidRegistration = errors.New("secret: invalid provider registration")

	// ErrInvalidRef is returned for references a provider cannot accept.
	ErrInvalidRef = errors.New("secret: invalid reference")
)
