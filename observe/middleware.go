package observe

import (
	"context"
	"errors"
	"time"
)

// CallFunc is the signature of an observed operation.
type CallFunc func(ctx context.Context, op OpMeta) error

// Middleware wraps catalog calls with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CallFunc.
//   - Context: the wrapped function receives a context carrying the span.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer   Tracer
	metrics  Metrics
	logger   Logger
	expected func(error) bool
}

// MiddlewareOption configures a Middleware.
type MiddlewareOption func(*Middleware)

// WithExpectedErrors marks errors that are normal results rather than
// failures, such as a catalog miss. They are counted as successful calls
// and logged at debug.
func WithExpectedErrors(match func(error) bool) MiddlewareOption {
	return func(m *Middleware) {
		m.expected = match
	}
}

// NewMiddleware creates a Middleware with the given components.
// Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger, opts ...MiddlewareOption) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	m := &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Wrap wraps fn with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn CallFunc) CallFunc {
	return func(ctx context.Context, op OpMeta) error {
		ctx, span := m.tracer.StartSpan(ctx, op)
		start := time.Now()

		err := fn(ctx, op)

		duration := time.Since(start)
		recorded := err
		if err != nil && m.expected != nil && m.expected(err) {
			recorded = nil
		}

		m.tracer.EndSpan(span, recorded)
		m.metrics.RecordCall(ctx, op, duration, recorded)

		log := m.logger.WithOp(op)
		fields := []Field{F("duration_ms", duration.Milliseconds())}

		switch {
		case err == nil:
			log.Debug(ctx, "call completed", fields...)
		case recorded == nil:
			log.Debug(ctx, "call completed", append(fields, F("result", err.Error()))...)
		case errors.Is(err, context.Canceled):
			log.Debug(ctx, "call canceled", fields...)
		default:
			log.Warn(ctx, "call failed", append(fields, F("error", err))...)
		}

		return err
	}
}

// Call runs fn through the middleware once.
func (m *Middleware) Call(ctx context.Context, op OpMeta, fn func(ctx context.Context) error) error {
	return m.Wrap(func(ctx context.Context, _ OpMeta) error {
		return fn(ctx)
	})(ctx, op)
}

// Metrics returns the metrics recorder used by the middleware.
func (m *Middleware) Metrics() Metrics {
	return m.metrics
}

// Logger returns the middleware logger.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer, opts ...MiddlewareOption) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger(), opts...), nil
}
