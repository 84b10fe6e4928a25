package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/mealscout/catalog"
	"github.com/jonwraymond/mealscout/filter"
	"github.com/jonwraymond/mealscout/observe"
	"github.com/jonwraymond/mealscout/recipe"
)

// DefaultDebounce is how long exclusion changes wait before a run starts.
const DefaultDebounce = 250 * time.Millisecond

// SessionConfig configures a Session.
type SessionConfig struct {
	// Debounce delays runs triggered by SetExclusion so that rapid edits
	// coalesce into one run. Default: DefaultDebounce. Negative disables.
	Debounce time.Duration

	// Logger receives session events. Default: no-op.
	Logger observe.Logger
}

// Session drives a Presenter for one interactive user.
//
// Every trigger takes a new generation. Starting a generation cancels the
// previous run, and a run only reaches the Presenter while its generation
// is current, so the display always settles on the latest region and term.
type Session struct {
	pipeline  *Pipeline
	presenter Presenter
	debounce  time.Duration
	logger    observe.Logger

	ctx  context.Context
	stop context.CancelFunc

	mu     sync.Mutex
	region recipe.Region
	term   string
	gen    uint64
	cancel context.CancelFunc
	timer  *time.Timer
	done   chan struct{}
	last   Result
	runID  string
}

// NewSession creates a session over p rendering to presenter.
func NewSession(p *Pipeline, presenter Presenter, cfg SessionConfig) (*Session, error) {
	if p == nil {
		return nil, ErrNilPipeline
	}
	if presenter == nil {
		return nil, ErrNilPresenter
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}

	ctx, stop := context.WithCancel(context.Background())
	return &Session{
		pipeline:  p,
		presenter: presenter,
		debounce:  cfg.Debounce,
		logger:    cfg.Logger,
		ctx:       ctx,
		stop:      stop,
	}, nil
}

// LoadRegions lists the catalog's regions and hands them to the Presenter.
// A failure is logged and shows an empty list.
func (s *Session) LoadRegions(ctx context.Context) []recipe.Region {
	regions := catalog.NewFailSoft(s.pipeline.Catalog(), s.logger).Regions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.presenter.ShowRegions(regions)
	return regions
}

// SelectRegion changes the region and starts a run immediately.
func (s *Session) SelectRegion(region recipe.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.region = region
	s.scheduleLocked(0)
}

// SetExclusion changes the exclusion term. When a region is selected, a
// run starts after the debounce window; further changes inside the window
// restart it.
func (s *Session) SetExclusion(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if term == s.term {
		return
	}
	s.term = term
	if s.region.IsBlank() {
		return
	}
	s.scheduleLocked(s.debounce)
}

// Refresh reruns the current region and term immediately.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked(0)
}

// Debounce returns the delay applied to exclusion edits; 0 means none.
func (s *Session) Debounce() time.Duration {
	return s.debounce
}

// Region returns the selected region.
func (s *Session) Region() recipe.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

// Term returns the exclusion term.
func (s *Session) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Generation returns the latest generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Last returns the result of the most recent run that completed while
// current.
func (s *Session) Last() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Wait blocks until the latest triggered run has settled, including any
// pending debounce.
func (s *Session) Wait() {
	for {
		s.mu.Lock()
		done := s.done
		s.mu.Unlock()
		if done == nil {
			return
		}
		<-done

		s.mu.Lock()
		settled := s.done == done
		s.mu.Unlock()
		if settled {
			return
		}
	}
}

// OpenDetail resolves a recipe's detail through the shared cache and shows
// it, or shows MessageNoDetail when it is unavailable.
func (s *Session) OpenDetail(ctx context.Context, summary recipe.Summary) *recipe.Detail {
	detail, outcome, err := s.pipeline.Resolver().Resolve(ctx, summary.Name)
	if err != nil && ctx.Err() == nil {
		s.logger.Warn(ctx, "detail unavailable",
			observe.F("recipe", summary.Name),
			observe.F("outcome", outcome.String()),
			observe.F("error", err),
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if detail == nil {
		s.presenter.ShowError(MessageNoDetail)
		return nil
	}
	s.presenter.ShowDetail(detail)
	return detail
}

// Close cancels any pending or running work. The session is unusable
// afterwards.
func (s *Session) Close() {
	s.stop()
	s.mu.Lock()
	s.gen++
	s.stopPendingLocked()
	s.mu.Unlock()
	s.Wait()
}

func (s *Session) stopPendingLocked() {
	if s.timer != nil {
		// A timer that already fired closes its own channel.
		if s.timer.Stop() {
			close(s.done)
		}
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) scheduleLocked(delay time.Duration) {
	if s.ctx.Err() != nil {
		return
	}
	s.stopPendingLocked()

	s.gen++
	gen := s.gen
	done := make(chan struct{})
	s.done = done

	if delay <= 0 {
		s.startLocked(gen, done)
		return
	}
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			close(done)
			return
		}
		s.timer = nil
		s.startLocked(gen, done)
	})
}

func (s *Session) startLocked(gen uint64, done chan struct{}) {
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.runID = uuid.NewString()
	go s.run(ctx, cancel, gen, s.runID, s.region, s.term, done)
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, gen uint64, runID string, region recipe.Region, term string, done chan struct{}) {
	defer close(done)
	defer cancel()

	if !s.present(gen, func(p Presenter) { p.Clear() }) {
		return
	}

	res := s.pipeline.RunEach(ctx, region, term, func(sum recipe.Summary) bool {
		return s.present(gen, func(p Presenter) { p.AddCard(sum) })
	})
	res.Generation = gen

	log := s.logger
	fields := []observe.Field{
		observe.F("run_id", runID),
		observe.F("generation", gen),
		observe.F("region", string(region)),
		observe.F("term", filter.Normalize(term)),
	}

	current := s.present(gen, func(p Presenter) {
		if state := res.EmptyState(); state != EmptyNone {
			p.ShowEmpty(state.Message(term))
		}
		s.last = res
	})
	if !current || res.Canceled {
		log.Debug(ctx, "stale run discarded", fields...)
		return
	}

	log.Info(ctx, "run finished", append(fields,
		observe.F("candidates", res.TotalCandidates),
		observe.F("shown", len(res.Shown)),
		observe.F("excluded", res.Excluded),
		observe.F("unresolved", res.Unresolved),
		observe.F("load_failed", res.LoadFailed),
	)...)
}

// present calls fn with the presenter if gen is still current. It reports
// whether fn ran.
func (s *Session) present(gen uint64, fn func(Presenter)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	fn(s.presenter)
	return true
}
