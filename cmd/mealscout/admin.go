package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/mealscout/auth"
	"github.com/jonwraymond/mealscout/health"
	"github.com/jonwraymond/mealscout/observe"
)

// adminRouter serves health probes, Prometheus metrics and cache stats.
// When credentials are configured, everything except /healthz and /readyz
// requires them.
func adminRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if n := a.cfg.Admin.RateLimit; n > 0 {
		r.Use(httprate.LimitByIP(n, time.Minute))
	}

	if a.authn == nil {
		health.RegisterRoutes(r, a.health)
		mountAdmin(r, a)
		return r
	}

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(a.health))
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(a.authn, a.logger))
		r.Get("/health", health.DetailedHandler(a.health))
		r.Get("/health/{name}", health.SingleCheckHandler(a.health))
		mountAdmin(r, a)
	})
	return r
}

func mountAdmin(r chi.Router, a *app) {
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	r.Get("/debug/cache", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.cache.Stats())
	})
}

// serveAdmin runs the admin server until ctx ends.
func serveAdmin(ctx context.Context, addr string, a *app) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           adminRouter(a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	a.logger.Info(ctx, "admin server listening", observe.F("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
