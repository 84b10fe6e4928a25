// Package observe provides logging, tracing and metrics for mealscout.
//
// Logging is backed by go.uber.org/zap. Tracing and metrics use
// OpenTelemetry; exporters are chosen by name in Config and built by the
// exporters subpackage. Catalog calls are wrapped by Middleware, which opens
// a span, records call metrics and writes one log line per call.
package observe
