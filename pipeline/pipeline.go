package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/catalog"
	"github.com/jonwraymond/mealscout/filter"
	"github.com/jonwraymond/mealscout/observe"
	"github.com/jonwraymond/mealscout/recipe"
	"github.com/jonwraymond/mealscout/resilience"
)

// Mode selects how candidate details are resolved.
type Mode int

const (
	// ModeSequential resolves one candidate at a time.
	ModeSequential Mode = iota
	// ModeConcurrent resolves candidates in parallel, bounded by a bulkhead.
	ModeConcurrent
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeConcurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// ParseMode parses "sequential" or "concurrent". Empty means sequential.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return ModeSequential, nil
	case "concurrent":
		return ModeConcurrent, nil
	default:
		return ModeSequential, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DefaultConcurrency bounds in-flight detail lookups in ModeConcurrent.
const DefaultConcurrency = 4

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMode sets the resolution mode.
func WithMode(mode Mode) Option {
	return func(p *Pipeline) {
		p.mode = mode
	}
}

// WithConcurrency sets how many detail lookups ModeConcurrent may run at
// once. Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger observe.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics sets the run metrics recorder.
func WithMetrics(metrics observe.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// Pipeline filters a region's recipes by an exclusion term.
//
// A Pipeline holds no per-run state and is safe for concurrent use. The
// resolver's cache is the only state shared between runs.
type Pipeline struct {
	catalog     catalog.Catalog
	resolver    *cache.Resolver
	mode        Mode
	concurrency int
	bulkhead    *resilience.Bulkhead
	logger      observe.Logger
	metrics     observe.Metrics
}

// New creates a pipeline. It panics if cat or resolver is nil.
func New(cat catalog.Catalog, resolver *cache.Resolver, opts ...Option) *Pipeline {
	if cat == nil {
		panic("pipeline: catalog is nil")
	}
	if resolver == nil {
		panic("pipeline: resolver is nil")
	}

	p := &Pipeline{
		catalog:     cat,
		resolver:    resolver,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = observe.NopLogger()
	}
	if p.metrics == nil {
		p.metrics = observe.NopMetrics()
	}
	// One bulkhead per pipeline bounds lookups across overlapping runs.
	p.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
		MaxConcurrent: p.concurrency,
		WaitForSlot:   true,
	})
	return p
}

// Mode returns the resolution mode.
func (p *Pipeline) Mode() Mode {
	return p.mode
}

// Catalog returns the catalog the pipeline lists from.
func (p *Pipeline) Catalog() catalog.Catalog {
	return p.catalog
}

// Resolver returns the detail resolver.
func (p *Pipeline) Resolver() *cache.Resolver {
	return p.resolver
}

// Run filters region by term and returns the collected result.
func (p *Pipeline) Run(ctx context.Context, region recipe.Region, term string) Result {
	return p.RunEach(ctx, region, term, nil)
}

// RunEach is Run that also hands each survivor to emit as soon as it is
// decided, in listing order. Returning false from emit stops the run.
func (p *Pipeline) RunEach(ctx context.Context, region recipe.Region, term string, emit func(recipe.Summary) bool) Result {
	res := Result{Region: region, Term: term}
	if region.IsBlank() {
		return res
	}
	if emit == nil {
		emit = func(recipe.Summary) bool { return true }
	}

	start := time.Now()
	candidates, err := p.catalog.ListByRegion(ctx, region)
	if err != nil {
		if ctx.Err() != nil {
			res.Canceled = true
			return res
		}
		p.logger.Error(ctx, "failed to load region listing",
			observe.F("region", string(region)),
			observe.F("error", err),
		)
		res.LoadFailed = true
		p.metrics.RecordRun(ctx, 0, 0)
		return res
	}
	res.TotalCandidates = len(candidates)
	res.Shown = make([]recipe.Summary, 0, len(candidates))

	matcher := filter.NewMatcher(term)
	if p.mode == ModeConcurrent && len(candidates) > 1 {
		p.runConcurrent(ctx, candidates, matcher, emit, &res)
	} else {
		p.runSequential(ctx, candidates, matcher, emit, &res)
	}

	p.metrics.RecordRun(ctx, res.TotalCandidates, len(res.Shown))
	p.logger.Debug(ctx, "pipeline run finished",
		observe.F("region", string(region)),
		observe.F("mode", p.mode.String()),
		observe.F("candidates", res.TotalCandidates),
		observe.F("shown", len(res.Shown)),
		observe.F("excluded", res.Excluded),
		observe.F("unresolved", res.Unresolved),
		observe.F("canceled", res.Canceled),
		observe.F("duration_ms", time.Since(start).Milliseconds()),
	)
	return res
}

func (p *Pipeline) runSequential(ctx context.Context, candidates []recipe.Summary, m filter.Matcher, emit func(recipe.Summary) bool, res *Result) {
	for _, c := range candidates {
		detail, outcome, _ := p.resolver.Resolve(ctx, c.Name)
		if outcome == cache.OutcomeCanceled {
			res.Canceled = true
			return
		}
		if !decide(res, m, c, detail, emit) {
			return
		}
	}
}

type resolved struct {
	detail  *recipe.Detail
	outcome cache.Outcome
	done    chan struct{}
}

func (p *Pipeline) runConcurrent(ctx context.Context, candidates []recipe.Summary, m filter.Matcher, emit func(recipe.Summary) bool, res *Result) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]resolved, len(candidates))
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	var g errgroup.Group
	for i, c := range candidates {
		slot := &slots[i]
		name := c.Name
		g.Go(func() error {
			defer close(slot.done)
			if err := p.bulkhead.Acquire(ctx); err != nil {
				slot.outcome = cache.OutcomeCanceled
				return nil
			}
			defer p.bulkhead.Release()
			slot.detail, slot.outcome, _ = p.resolver.Resolve(ctx, name)
			return nil
		})
	}

	for i, c := range candidates {
		<-slots[i].done
		if slots[i].outcome == cache.OutcomeCanceled {
			res.Canceled = true
			break
		}
		if !decide(res, m, c, slots[i].detail, emit) {
			break
		}
	}

	cancel()
	_ = g.Wait()
}

// decide applies the exclusion to one candidate and reports whether the
// run should continue.
func decide(res *Result, m filter.Matcher, c recipe.Summary, detail *recipe.Detail, emit func(recipe.Summary) bool) bool {
	if detail == nil {
		res.Unresolved++
	} else if m.Excludes(detail) {
		res.Excluded++
		return true
	}
	res.Shown = append(res.Shown, c)
	if !emit(c) {
		res.Canceled = true
		return false
	}
	return true
}

// LookupRecorder returns a cache.LookupHook that counts resolutions by
// outcome and logs them at debug.
func LookupRecorder(metrics observe.Metrics, logger observe.Logger) cache.LookupHook {
	if metrics == nil {
		metrics = observe.NopMetrics()
	}
	if logger == nil {
		logger = observe.NopLogger()
	}
	return func(ctx context.Context, name string, outcome cache.Outcome, err error) {
		metrics.RecordCacheLookup(ctx, outcome.String())
		fields := []observe.Field{observe.F("recipe", name), observe.F("outcome", outcome.String())}
		if err != nil {
			fields = append(fields, observe.F("error", err))
		}
		logger.Debug(ctx, "detail lookup", fields...)
	}
}
