package main

import (
	"context"
	"errors"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"

	"github.com/jonwraymond/mealscout/auth"
	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/catalog"
	"github.com/jonwraymond/mealscout/config"
	"github.com/jonwraymond/mealscout/health"
	"github.com/jonwraymond/mealscout/observe"
	"github.com/jonwraymond/mealscout/pipeline"
	"github.com/jonwraymond/mealscout/resilience"
)

// app holds the wired components of one mealscout process.
type app struct {
	cfg      *config.Config
	obs      observe.Observer
	logger   observe.Logger
	client   *catalog.Client
	breaker  *resilience.CircuitBreaker
	cache    *cache.MemoryCache
	pipeline *pipeline.Pipeline
	health   *health.Aggregator
	registry *promclient.Registry
	authn    auth.Authenticator // nil leaves the admin surface open
}

// newApp wires the catalog client, cache, pipeline and health checks from
// cfg. Logs go to logs and stdout exporter output to exports.
func newApp(ctx context.Context, cfg *config.Config, logs, exports io.Writer) (*app, error) {
	registry := promclient.NewRegistry()

	obsCfg := cfg.ObserveConfig(version, logs, exports)
	obsCfg.Metrics.Registerer = registry
	obs, err := observe.NewObserver(ctx, obsCfg)
	if err != nil {
		return nil, err
	}
	logger := obs.Logger()

	mw, err := observe.MiddlewareFromObserver(obs, observe.WithExpectedErrors(catalog.IsNotFound))
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	var (
		execOpts []resilience.ExecutorOption
		breaker  *resilience.CircuitBreaker
	)
	if cfg.Catalog.Rate > 0 {
		execOpts = append(execOpts, resilience.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Rate:        cfg.Catalog.Rate,
			Burst:       cfg.Catalog.Burst,
			WaitOnLimit: true,
			MaxWait:     30 * time.Second,
		})))
	}
	if cfg.Catalog.Breaker.Enabled {
		breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			MaxFailures:  cfg.Catalog.Breaker.MaxFailures,
			ResetTimeout: cfg.Catalog.Breaker.ResetTimeout,
			IsFailure:    catalog.CountsAsFailure,
			OnStateChange: func(from, to resilience.State) {
				logger.Warn(context.Background(), "catalog breaker state changed",
					observe.F("from", from.String()),
					observe.F("to", to.String()),
				)
			},
		})
		execOpts = append(execOpts, resilience.WithCircuitBreaker(breaker))
	}
	if cfg.Catalog.Timeout > 0 {
		execOpts = append(execOpts, resilience.WithTimeout(cfg.Catalog.Timeout))
	}

	client, err := catalog.New(catalog.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		UserAgent: cfg.Catalog.UserAgent,
	},
		catalog.WithExecutor(resilience.NewExecutor(execOpts...)),
		catalog.WithMiddleware(mw),
		catalog.WithLogger(logger),
	)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	mem := cache.NewMemoryCache()
	resolver := cache.NewResolver(mem, catalog.DetailFetcher(client), cfg.CachePolicy(),
		cache.WithLookupHook(pipeline.LookupRecorder(mw.Metrics(), logger)),
	)
	p := pipeline.New(client, resolver,
		pipeline.WithMode(cfg.PipelineMode()),
		pipeline.WithConcurrency(cfg.Pipeline.Concurrency),
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(mw.Metrics()),
	)

	checkCfg := health.CatalogCheckerConfig{}
	if breaker != nil {
		checkCfg.Breaker = breaker
	}
	agg := health.NewAggregator()
	agg.Register("catalog", health.NewCatalogChecker(client, checkCfg))
	agg.Register("cache", health.NewCacheChecker(mem, health.CacheCheckerConfig{}))

	return &app{
		cfg:      cfg,
		obs:      obs,
		logger:   logger,
		client:   client,
		breaker:  breaker,
		cache:    mem,
		pipeline: p,
		health:   agg,
		registry: registry,
		authn:    adminAuthenticator(cfg.Admin),
	}, nil
}

// adminAuthenticator builds the admin guard from resolved credentials.
func adminAuthenticator(cfg config.AdminConfig) auth.Authenticator {
	if !cfg.AuthEnabled() {
		return nil
	}
	var jwtAuth auth.Authenticator
	if cfg.JWTSecret != "" {
		jwtAuth = auth.NewJWTAuthenticator(auth.JWTConfig{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
			Leeway: 30 * time.Second,
		})
	}
	var keyAuth auth.Authenticator
	if keys := auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{}, cfg.APIKeys...); keys.Len() > 0 {
		keyAuth = keys
	}
	return auth.NewChain(keyAuth, jwtAuth)
}

// newSession starts an interactive session rendering to presenter. A zero
// pipeline.debounce runs every exclusion edit at once.
func (a *app) newSession(presenter pipeline.Presenter) (*pipeline.Session, error) {
	debounce := a.cfg.Pipeline.Debounce
	if debounce == 0 {
		debounce = -1
	}
	return pipeline.NewSession(a.pipeline, presenter, pipeline.SessionConfig{
		Debounce: debounce,
		Logger:   a.logger,
	})
}

// Close flushes telemetry.
func (a *app) Close(ctx context.Context) error {
	err := a.obs.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		a.logger.Warn(ctx, "telemetry flush timed out")
	}
	return err
}
