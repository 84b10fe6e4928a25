package filter

import (
	"strings"

	"github.com/jonwraymond/mealscout/recipe"
)

// Normalize trims and lower-cases an exclusion term.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// IsBlank reports whether term is empty or whitespace only.
func IsBlank(term string) bool {
	return strings.TrimSpace(term) == ""
}

// Excludes reports whether detail contains an ingredient matching term.
//
// It returns false when term is blank or detail is nil, and true on the
// first ingredient whose name contains the term, ignoring case.
// Neither argument is modified.
func Excludes(detail *recipe.Detail, term string) bool {
	return NewMatcher(term).Excludes(detail)
}

// Matcher holds a pre-normalized exclusion term so a pipeline run does not
// re-normalize it for every candidate. The zero value matches nothing.
type Matcher struct {
	term string
}

// NewMatcher creates a Matcher for term.
func NewMatcher(term string) Matcher {
	return Matcher{term: Normalize(term)}
}

// Term returns the normalized term.
func (m Matcher) Term() string {
	return m.term
}

// Active reports whether the matcher can exclude anything.
func (m Matcher) Active() bool {
	return m.term != ""
}

// Excludes reports whether detail contains an ingredient matching the term.
func (m Matcher) Excludes(detail *recipe.Detail) bool {
	if !m.Active() || detail == nil {
		return false
	}
	for i, ing := range detail.Ingredients {
		if i >= recipe.MaxIngredientSlots {
			break
		}
		if strings.Contains(strings.ToLower(ing.Name), m.term) {
			return true
		}
	}
	return false
}
