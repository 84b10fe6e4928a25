package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/catalog"
	"github.com/jonwraymond/mealscout/recipe"
)

// fakeCatalog is an in-memory catalog.Catalog that counts calls.
type fakeCatalog struct {
	mu          sync.Mutex
	regions     []recipe.Region
	regionsErr  error
	listings    map[recipe.Region][]recipe.Summary
	listErr     error
	details     map[string]*recipe.Detail
	detailErrs  map[string]error
	gates       map[string]chan struct{}
	delay       time.Duration
	listCalls   int
	detailCalls map[string]int
	inFlight    int
	maxInFlight int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		listings:    make(map[recipe.Region][]recipe.Summary),
		details:     make(map[string]*recipe.Detail),
		detailErrs:  make(map[string]error),
		gates:       make(map[string]chan struct{}),
		detailCalls: make(map[string]int),
	}
}

// withRegion registers a region whose candidates are the given details, in
// order.
func (f *fakeCatalog) withRegion(region recipe.Region, dishes ...*recipe.Detail) *fakeCatalog {
	for _, d := range dishes {
		f.listings[region] = append(f.listings[region], d.Summary())
		f.details[d.Name] = d
	}
	f.regions = append(f.regions, region)
	return f
}

// withMissing appends a candidate the catalog cannot resolve.
func (f *fakeCatalog) withMissing(region recipe.Region, name string) *fakeCatalog {
	f.listings[region] = append(f.listings[region], recipe.Summary{Name: name})
	return f
}

func (f *fakeCatalog) Regions(ctx context.Context) ([]recipe.Region, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.regionsErr != nil {
		return nil, f.regionsErr
	}
	return append([]recipe.Region(nil), f.regions...), nil
}

func (f *fakeCatalog) ListByRegion(ctx context.Context, region recipe.Region) ([]recipe.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]recipe.Summary(nil), f.listings[region]...), nil
}

func (f *fakeCatalog) DetailByName(ctx context.Context, name string) (*recipe.Detail, error) {
	f.mu.Lock()
	f.detailCalls[name]++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	gate := f.gates[name]
	delay := f.delay
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.detailErrs[name]; err != nil {
		return nil, err
	}
	if d, ok := f.details[name]; ok {
		return d, nil
	}
	return nil, &catalog.Error{Op: catalog.OpDetailByName, Name: name, Err: catalog.ErrNotFound}
}

func (f *fakeCatalog) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailCalls[name]
}

func (f *fakeCatalog) lists() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeCatalog) gate(name string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[name] = ch
	return ch
}

func dish(name string, ingredients ...string) *recipe.Detail {
	d := &recipe.Detail{ID: "id-" + name, Name: name}
	for _, ing := range ingredients {
		d.Ingredients = append(d.Ingredients, recipe.Ingredient{Name: ing})
	}
	return d
}

func newTestPipeline(cat *fakeCatalog, opts ...Option) *Pipeline {
	resolver := cache.NewResolver(cache.NewMemoryCache(), catalog.DetailFetcher(cat), cache.DefaultPolicy())
	return New(cat, resolver, opts...)
}

func names(summaries []recipe.Summary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Name
	}
	return out
}

// recorder is a Presenter that records what it was asked to render.
type recorder struct {
	mu      sync.Mutex
	clears  int
	cards   []string
	empty   []string
	regions []recipe.Region
	details []string
	errors  []string
}

func (r *recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
	r.cards = nil
	r.empty = nil
}

func (r *recorder) ShowRegions(regions []recipe.Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions = regions
}

func (r *recorder) AddCard(s recipe.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = append(r.cards, s.Name)
}

func (r *recorder) ShowEmpty(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.empty = append(r.empty, message)
}

func (r *recorder) ShowDetail(d *recipe.Detail) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = append(r.details, d.Name)
}

func (r *recorder) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *recorder) snapshot() (cards, empty []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.cards...), append([]string(nil), r.empty...)
}

var _ Presenter = (*recorder)(nil)
var _ catalog.Catalog = (*fakeCatalog)(nil)
