package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jonwraymond/mealscout/recipe"
)

// envelope is the shape of every catalog response. "meals": null and a
// missing key both decode to an empty slice.
type envelope[T any] struct {
	Meals []T `json:"meals"`
}

type areaRecord struct {
	Area string `json:"strArea"`
}

type summaryRecord struct {
	ID    flexString `json:"idMeal"`
	Name  string     `json:"strMeal"`
	Thumb string     `json:"strMealThumb"`
}

func (r summaryRecord) toSummary() recipe.Summary {
	return recipe.Summary{ID: string(r.ID), Name: r.Name, ThumbnailURL: r.Thumb}
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexString(stringify(v))
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// CatalogMeal is a full recipe record as the catalog sends it, with
// ingredients spread over numbered strIngredientN/strMeasureN fields.
type CatalogMeal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumb        string
	Tags         string
	YouTube      string
	Source       string
	Ingredients  [recipe.MaxIngredientSlots]string
	Measures     [recipe.MaxIngredientSlots]string
}

// UnmarshalJSON decodes the flat upstream record. Null fields decode to
// empty strings.
func (m *CatalogMeal) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = CatalogMeal{}
		return nil
	}

	get := func(key string) string { return stringify(raw[key]) }

	*m = CatalogMeal{
		ID:           get("idMeal"),
		Name:         get("strMeal"),
		Category:     get("strCategory"),
		Area:         get("strArea"),
		Instructions: get("strInstructions"),
		Thumb:        get("strMealThumb"),
		Tags:         get("strTags"),
		YouTube:      get("strYoutube"),
		Source:       get("strSource"),
	}
	for i := 0; i < recipe.MaxIngredientSlots; i++ {
		n := strconv.Itoa(i + 1)
		m.Ingredients[i] = get("strIngredient" + n)
		m.Measures[i] = get("strMeasure" + n)
	}
	return nil
}

// Slots returns the raw numbered ingredient slots.
func (m *CatalogMeal) Slots() []recipe.Slot {
	slots := make([]recipe.Slot, recipe.MaxIngredientSlots)
	for i := range slots {
		slots[i] = recipe.Slot{Ingredient: m.Ingredients[i], Measure: m.Measures[i]}
	}
	return slots
}

// Detail converts the record to a recipe.Detail.
func (m *CatalogMeal) Detail() *recipe.Detail {
	if m == nil {
		return nil
	}
	return &recipe.Detail{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		Area:         m.Area,
		Instructions: m.Instructions,
		ThumbnailURL: m.Thumb,
		Tags:         splitTags(m.Tags),
		YouTubeURL:   m.YouTube,
		SourceURL:    m.Source,
		Ingredients:  recipe.AssembleIngredients(m.Slots()),
	}
}

// Summary converts the record to its listing view.
func (m *CatalogMeal) Summary() recipe.Summary {
	if m == nil {
		return recipe.Summary{}
	}
	return recipe.Summary{ID: m.ID, Name: m.Name, ThumbnailURL: m.Thumb}
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// pickMeal returns the record whose name equals name exactly, or the
// first record when none does.
func pickMeal(meals []CatalogMeal, name string) *CatalogMeal {
	if len(meals) == 0 {
		return nil
	}
	for i := range meals {
		if meals[i].Name == name {
			return &meals[i]
		}
	}
	return &meals[0]
}
