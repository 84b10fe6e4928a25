// Package secret resolves credentials referenced from configuration, such
// as the catalog API key.
//
// A configured value may be:
//   - a literal: "1"
//   - an environment expansion: "${MEALDB_API_KEY}" (see ExpandEnvStrict)
//   - a full reference: "secretref:env:MEALDB_API_KEY"
//   - an inline reference: "key=secretref:file:mealdb_key"
//
// References name a Provider registered with the Resolver. The env and
// file providers are built in; others can be added through a Registry.
package secret
