package recipe

import "strings"

// Region identifies a geographic bucket of recipes (upstream "area").
// The set of valid regions is owned by the catalog.
type Region string

// IsBlank reports whether the region is empty or whitespace only.
// A blank region never triggers a catalog fetch.
func (r Region) IsBlank() bool {
	return strings.TrimSpace(string(r)) == ""
}

// String returns the region as a plain string.
func (r Region) String() string {
	return string(r)
}

// Summary is the minimal record returned by a region listing.
// Name is the natural key used for detail lookups.
type Summary struct {
	ID           string
	Name         string
	ThumbnailURL string
}

// Detail is a fully resolved recipe.
type Detail struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	ThumbnailURL string
	Tags         []string
	YouTubeURL   string
	SourceURL    string
	Ingredients  []Ingredient
}

// IngredientLines renders each ingredient as "<measure> <name>".
// A nil Detail yields nil.
func (d *Detail) IngredientLines() []string {
	if d == nil || len(d.Ingredients) == 0 {
		return nil
	}
	lines := make([]string, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		lines[i] = ing.String()
	}
	return lines
}

// Summary returns the listing view of the detail.
func (d *Detail) Summary() Summary {
	if d == nil {
		return Summary{}
	}
	return Summary{ID: d.ID, Name: d.Name, ThumbnailURL: d.ThumbnailURL}
}

// Ingredient is one populated ingredient slot. Measure may be empty.
type Ingredient struct {
	Measure string
	Name    string
}

// String renders the ingredient with its measure, or the bare name when
// the measure is empty.
func (i Ingredient) String() string {
	return strings.TrimSpace(strings.TrimSpace(i.Measure) + " " + strings.TrimSpace(i.Name))
}
