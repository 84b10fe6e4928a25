// Package config loads mealscout configuration.
//
// Values come from built-in defaults, an optional YAML file, and
// MEALSCOUT_* environment variables, in increasing precedence. Nested keys
// map to variables by replacing dots with underscores, so catalog.api_key
// is MEALSCOUT_CATALOG_API_KEY.
//
// The catalog API key may be a secret reference (see package secret);
// ResolveSecrets replaces it with the resolved value.
package config
