package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jonwraymond/mealscout/cache"
	"github.com/jonwraymond/mealscout/observe"
	"github.com/jonwraymond/mealscout/recipe"
	"github.com/jonwraymond/mealscout/resilience"
)

const (
	// DefaultBaseURL is the public TheMealDB v1 endpoint.
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/"

	// DefaultAPIKey is the public test key.
	DefaultAPIKey = "1"

	// DefaultUserAgent identifies the client to the catalog.
	DefaultUserAgent = "mealscout/1.0"

	// maxErrorBodySize bounds how much of a failed response is read.
	maxErrorBodySize = 64 * 1024
)

// Operation names as they appear in spans, metrics and logs.
const (
	OpRegions      = "regions"
	OpListByRegion = "list_by_region"
	OpDetailByName = "detail_by_name"
)

// Catalog is the read-only view of the remote recipe catalog.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: all methods honor cancellation.
//   - Errors: DetailByName returns ErrNotFound for an unknown name;
//     other failures wrap ErrTransport or ErrDecode.
type Catalog interface {
	// Regions returns every region the catalog knows, in catalog order.
	Regions(ctx context.Context) ([]recipe.Region, error)

	// ListByRegion returns the recipes of a region, in catalog order.
	ListByRegion(ctx context.Context, region recipe.Region) ([]recipe.Summary, error)

	// DetailByName returns the full record for a recipe name.
	DetailByName(ctx context.Context, name string) (*recipe.Detail, error)
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, up to and excluding the key segment.
	// Default: DefaultBaseURL.
	BaseURL string

	// APIKey is the path segment that authenticates requests.
	// Default: DefaultAPIKey.
	APIKey string

	// HTTPClient performs requests. Default: a client with no timeout;
	// bound calls with a resilience.Timeout instead.
	HTTPClient *http.Client

	// UserAgent is sent with every request. Default: DefaultUserAgent.
	UserAgent string
}

// Option configures optional Client collaborators.
type Option func(*Client)

// WithExecutor runs every call through exec.
func WithExecutor(exec *resilience.Executor) Option {
	return func(c *Client) {
		c.exec = exec
	}
}

// WithMiddleware traces, measures and logs every call through mw.
func WithMiddleware(mw *observe.Middleware) Option {
	return func(c *Client) {
		c.mw = mw
	}
}

// WithLogger sets the logger used by the fail-soft operations.
func WithLogger(logger observe.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client talks to a TheMealDB-compatible catalog over HTTP.
type Client struct {
	base      *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
	exec      *resilience.Executor
	mw        *observe.Middleware
	logger    observe.Logger
}

// Ensure Client implements Catalog.
var _ Catalog = (*Client)(nil)

// New creates a catalog client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url %q must be http or https", ErrInvalidConfig, cfg.BaseURL)
	}
	if strings.Contains(cfg.APIKey, "/") {
		return nil, fmt.Errorf("%w: api key must be a single path segment", ErrInvalidConfig)
	}

	c := &Client{
		base:      base,
		apiKey:    cfg.APIKey,
		http:      cfg.HTTPClient,
		userAgent: cfg.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.exec == nil {
		c.exec = resilience.NewExecutor()
	}
	if c.mw == nil {
		c.mw = observe.NewMiddleware(nil, nil, nil, observe.WithExpectedErrors(IsNotFound))
	}
	if c.logger == nil {
		c.logger = c.mw.Logger()
	}
	return c, nil
}

// Regions lists every region.
func (c *Client) Regions(ctx context.Context) ([]recipe.Region, error) {
	var env envelope[areaRecord]
	if err := c.call(ctx, OpRegions, "", "list.php", url.Values{"a": {"list"}}, &env); err != nil {
		return nil, err
	}

	regions := make([]recipe.Region, 0, len(env.Meals))
	for _, rec := range env.Meals {
		region := recipe.Region(rec.Area)
		if region.IsBlank() {
			continue
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// ListByRegion lists the recipes of one region. Duplicates are kept.
func (c *Client) ListByRegion(ctx context.Context, region recipe.Region) ([]recipe.Summary, error) {
	if region.IsBlank() {
		return nil, &Error{Op: OpListByRegion, Err: ErrInvalidRegion}
	}

	var env envelope[summaryRecord]
	if err := c.call(ctx, OpListByRegion, string(region), "filter.php", url.Values{"a": {string(region)}}, &env); err != nil {
		return nil, err
	}

	summaries := make([]recipe.Summary, 0, len(env.Meals))
	for _, rec := range env.Meals {
		summaries = append(summaries, rec.toSummary())
	}
	return summaries, nil
}

// DetailByName searches the catalog by name. When several recipes match,
// the one whose name is exactly name wins, otherwise the first.
func (c *Client) DetailByName(ctx context.Context, name string) (*recipe.Detail, error) {
	var env envelope[CatalogMeal]
	if err := c.call(ctx, OpDetailByName, name, "search.php", url.Values{"s": {name}}, &env); err != nil {
		return nil, err
	}

	meal := pickMeal(env.Meals, name)
	if meal == nil {
		return nil, &Error{Op: OpDetailByName, Name: name, Err: ErrNotFound}
	}
	return meal.Detail(), nil
}

// Ping checks that the catalog answers. It is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Regions(ctx)
	return err
}

// SoftRegions is Regions that logs failures and returns an empty list.
func (c *Client) SoftRegions(ctx context.Context) []recipe.Region {
	return NewFailSoft(c, c.logger).Regions(ctx)
}

// SoftListByRegion is ListByRegion that logs failures and returns an
// empty list.
func (c *Client) SoftListByRegion(ctx context.Context, region recipe.Region) []recipe.Summary {
	return NewFailSoft(c, c.logger).ListByRegion(ctx, region)
}

// SoftDetailByName is DetailByName that returns nil for a missing recipe
// and for any failure. Failures are logged.
func (c *Client) SoftDetailByName(ctx context.Context, name string) *recipe.Detail {
	return NewFailSoft(c, c.logger).DetailByName(ctx, name)
}

// call performs one observed, guarded GET and decodes the body into out.
func (c *Client) call(ctx context.Context, op, target, endpoint string, params url.Values, out any) error {
	meta := observe.OpMeta{Component: "catalog", Name: op, Target: target}
	return c.mw.Call(ctx, meta, func(ctx context.Context) error {
		err := c.exec.Execute(ctx, func(ctx context.Context) error {
			return c.get(ctx, op, target, endpoint, params, out)
		})
		if resilience.IsRejection(err) || errors.Is(err, resilience.ErrTimeout) {
			return &Error{Op: op, Name: target, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
		}
		return err
	})
}

func (c *Client) get(ctx context.Context, op, target, endpoint string, params url.Values, out any) error {
	u := c.base.JoinPath(c.apiKey, endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return &Error{Op: op, Name: target, Err: fmt.Errorf("%w: %w", ErrTransport, c.redact(err))}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Error{Op: op, Name: target, Err: ctxErr}
		}
		return &Error{Op: op, Name: target, Err: fmt.Errorf("%w: %w", ErrTransport, c.redact(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return &Error{
			Op:     op,
			Name:   target,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%w: unexpected status: %s", ErrTransport, body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Error{Op: op, Name: target, Status: resp.StatusCode, Err: ctxErr}
		}
		return &Error{Op: op, Name: target, Status: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	return nil
}

// redact hides the API key in URLs carried by transport errors.
func (c *Client) redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	masked := *ue
	masked.URL = strings.Replace(ue.URL, "/"+c.apiKey+"/", "/***/", 1)
	return &masked
}

// readBodyForError reads at most maxErrorBodySize bytes of a failed
// response for inclusion in the error.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return fmt.Sprintf("(failed to read body: %v)", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "(empty body)"
	}
	return string(body)
}

// DetailFetcher adapts a Catalog to cache.FetchFunc. A missing recipe
// becomes (nil, nil) so the resolver can cache the negative result. A call
// turned away by the resilience guard is marked cache.ErrNotAttempted so
// the name is looked up again once the guard lets calls through.
func DetailFetcher(cat Catalog) cache.FetchFunc {
	return func(ctx context.Context, name string) (*recipe.Detail, error) {
		detail, err := cat.DetailByName(ctx, name)
		switch {
		case err == nil:
			return detail, nil
		case IsNotFound(err):
			return nil, nil
		case resilience.IsRejection(err):
			return nil, fmt.Errorf("%w: %w", cache.ErrNotAttempted, err)
		default:
			return nil, err
		}
	}
}
