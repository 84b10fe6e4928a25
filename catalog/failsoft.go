package catalog

import (
	"context"
	"errors"

	"github.com/jonwraymond/mealscout/observe"
	"github.com/jonwraymond/mealscout/recipe"
)

// FailSoft exposes any Catalog through the fail-soft contract: failures are
// logged and answered with an empty list or a nil detail, never an error.
type FailSoft struct {
	cat    Catalog
	logger observe.Logger
}

// NewFailSoft wraps cat. A nil logger discards failures.
func NewFailSoft(cat Catalog, logger observe.Logger) *FailSoft {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &FailSoft{cat: cat, logger: logger}
}

// Regions lists every region, or returns an empty non-nil list.
func (f *FailSoft) Regions(ctx context.Context) []recipe.Region {
	regions, err := f.cat.Regions(ctx)
	if err != nil {
		f.log(ctx, OpRegions, "", err)
		return []recipe.Region{}
	}
	return regions
}

// ListByRegion lists one region's recipes, or returns an empty non-nil list.
func (f *FailSoft) ListByRegion(ctx context.Context, region recipe.Region) []recipe.Summary {
	summaries, err := f.cat.ListByRegion(ctx, region)
	if err != nil {
		f.log(ctx, OpListByRegion, string(region), err)
		return []recipe.Summary{}
	}
	return summaries
}

// DetailByName returns the detail for name, or nil when it is missing or
// the lookup failed.
func (f *FailSoft) DetailByName(ctx context.Context, name string) *recipe.Detail {
	detail, err := f.cat.DetailByName(ctx, name)
	if err != nil {
		f.log(ctx, OpDetailByName, name, err)
		return nil
	}
	return detail
}

func (f *FailSoft) log(ctx context.Context, op, target string, err error) {
	fields := []observe.Field{observe.F("op", op), observe.F("error", err)}
	if target != "" {
		fields = append(fields, observe.F("target", target))
	}
	switch {
	case IsNotFound(err), errors.Is(err, context.Canceled):
		f.logger.Debug(ctx, "catalog lookup returned nothing", fields...)
	default:
		f.logger.Error(ctx, "catalog lookup failed", fields...)
	}
}
