// Package auth guards the admin HTTP surface.
//
// Two credential types are accepted: static API keys sent in a header and
// HS256 bearer tokens. A Chain tries each configured Authenticator in order
// and Middleware turns the result into a 401 response or an Identity on the
// request context.
//
// Usage:
//
//	keys := auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{}, "s3cret")
//	r.Use(auth.Middleware(keys, logger))
package auth
