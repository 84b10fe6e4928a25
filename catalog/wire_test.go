package catalog

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/jonwraymond/mealscout/recipe"
)

const curryRecord = `{
	"idMeal": "52795",
	"strMeal": "Chicken Handi",
	"strCategory": "Chicken",
	"strArea": "Indian",
	"strInstructions": "Take a large pot.",
	"strMealThumb": "https://example.test/handi.jpg",
	"strTags": "Curry, Spicy,,",
	"strYoutube": "https://www.youtube.com/watch?v=IO0issT0Rmc",
	"strSource": null,
	"strIngredient1": "Chicken",
	"strMeasure1": "1.2 kg",
	"strIngredient2": " ",
	"strMeasure2": "ignored",
	"strIngredient3": "Onion ",
	"strMeasure3": " 5 thinly sliced",
	"strIngredient4": null,
	"strMeasure4": null,
	"strIngredient5": "Cream",
	"strMeasure5": null
}`

func TestCatalogMealUnmarshal(t *testing.T) {
	var m CatalogMeal
	if err := json.Unmarshal([]byte(curryRecord), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if m.ID != "52795" || m.Name != "Chicken Handi" || m.Area != "Indian" {
		t.Errorf("identity = %q/%q/%q", m.ID, m.Name, m.Area)
	}
	if m.Source != "" {
		t.Errorf("Source = %q, want empty for null", m.Source)
	}
	if m.Ingredients[0] != "Chicken" || m.Measures[0] != "1.2 kg" {
		t.Errorf("slot 1 = %q/%q", m.Ingredients[0], m.Measures[0])
	}
	if m.Ingredients[3] != "" || m.Measures[3] != "" {
		t.Errorf("slot 4 = %q/%q, want empty", m.Ingredients[3], m.Measures[3])
	}
	if m.Ingredients[19] != "" {
		t.Errorf("slot 20 = %q, want empty when absent", m.Ingredients[19])
	}
}

func TestCatalogMealUnmarshalNumericID(t *testing.T) {
	var m CatalogMeal
	if err := json.Unmarshal([]byte(`{"idMeal": 52772, "strMeal": "Teriyaki"}`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m.ID != "52772" {
		t.Errorf("ID = %q, want 52772", m.ID)
	}
}

func TestCatalogMealDetail(t *testing.T) {
	var m CatalogMeal
	if err := json.Unmarshal([]byte(curryRecord), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	d := m.Detail()

	wantIngredients := []recipe.Ingredient{
		{Measure: "1.2 kg", Name: "Chicken"},
		{Measure: "5 thinly sliced", Name: "Onion"},
		{Measure: "", Name: "Cream"},
	}
	if !reflect.DeepEqual(d.Ingredients, wantIngredients) {
		t.Errorf("Ingredients = %#v, want %#v", d.Ingredients, wantIngredients)
	}
	if want := []string{"Curry", "Spicy"}; !reflect.DeepEqual(d.Tags, want) {
		t.Errorf("Tags = %v, want %v", d.Tags, want)
	}
	if d.ThumbnailURL != "https://example.test/handi.jpg" {
		t.Errorf("ThumbnailURL = %q", d.ThumbnailURL)
	}
	if got := m.Summary(); got != d.Summary() {
		t.Errorf("Summary() = %+v, want %+v", got, d.Summary())
	}
}

func TestCatalogMealNil(t *testing.T) {
	var m *CatalogMeal
	if m.Detail() != nil {
		t.Error("nil record should convert to nil detail")
	}
	if m.Summary() != (recipe.Summary{}) {
		t.Error("nil record should convert to zero summary")
	}
}

func TestEnvelopeNullMeals(t *testing.T) {
	for _, body := range []string{`{"meals": null}`, `{}`, `{"meals": []}`} {
		var env envelope[summaryRecord]
		if err := json.Unmarshal([]byte(body), &env); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", body, err)
		}
		if len(env.Meals) != 0 {
			t.Errorf("Unmarshal(%s) meals = %d, want 0", body, len(env.Meals))
		}
	}
}

func TestPickMeal(t *testing.T) {
	meals := []CatalogMeal{
		{ID: "1", Name: "Chicken Curry (Mild)"},
		{ID: "2", Name: "Chicken Curry"},
		{ID: "3", Name: "chicken curry"},
	}

	tests := []struct {
		name   string
		meals  []CatalogMeal
		query  string
		wantID string
	}{
		{name: "exact match wins over first", meals: meals, query: "Chicken Curry", wantID: "2"},
		{name: "match is case sensitive", meals: meals, query: "chicken curry", wantID: "3"},
		{name: "no exact match takes first", meals: meals, query: "Chicken", wantID: "1"},
		{name: "empty", meals: nil, query: "Chicken", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickMeal(tt.meals, tt.query)
			switch {
			case tt.wantID == "" && got != nil:
				t.Errorf("pickMeal() = %+v, want nil", got)
			case tt.wantID != "" && (got == nil || got.ID != tt.wantID):
				t.Errorf("pickMeal() = %+v, want ID %s", got, tt.wantID)
			}
		})
	}
}
