package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/mealscout/filter"
	"github.com/jonwraymond/mealscout/recipe"
)

// Result summarizes one pipeline run.
type Result struct {
	Region          recipe.Region
	Term            string
	Shown           []recipe.Summary
	TotalCandidates int

	// Excluded counts candidates dropped by the exclusion term.
	Excluded int
	// Unresolved counts shown candidates whose detail was unavailable.
	Unresolved int
	// LoadFailed is set when the region listing could not be fetched.
	LoadFailed bool
	// Canceled is set when the run stopped before every candidate was decided.
	Canceled bool

	// Generation is the session generation that produced the result, or
	// zero for runs made outside a Session.
	Generation uint64
}

// EmptyState classifies why a run shows nothing.
type EmptyState int

const (
	// EmptyNone means there is nothing to report: results were shown, the
	// region was blank, or the run was canceled.
	EmptyNone EmptyState = iota
	// EmptyNoCandidates means the region has no recipes.
	EmptyNoCandidates
	// EmptyAllExcluded means every candidate was filtered out.
	EmptyAllExcluded
	// EmptyLoadFailed means the region listing could not be loaded.
	EmptyLoadFailed
)

// String returns the string representation of the state.
func (e EmptyState) String() string {
	switch e {
	case EmptyNone:
		return "none"
	case EmptyNoCandidates:
		return "no_candidates"
	case EmptyAllExcluded:
		return "all_excluded"
	case EmptyLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// Messages shown for empty results.
const (
	MessageNoCandidates = "No meals found for this area."
	MessageLoadFailed   = "Error loading meals. Please try again."
	MessageNoDetail     = "Unable to load recipe details."
)

// Message returns the user-facing text for the state. term is the
// exclusion term of the run.
func (e EmptyState) Message(term string) string {
	switch e {
	case EmptyNoCandidates:
		return MessageNoCandidates
	case EmptyAllExcluded:
		return fmt.Sprintf("No meals found without \"%s\".", strings.TrimSpace(term))
	case EmptyLoadFailed:
		return MessageLoadFailed
	default:
		return ""
	}
}

// EmptyState reports which empty-state message, if any, the run calls for.
func (r Result) EmptyState() EmptyState {
	switch {
	case r.Canceled, r.Region.IsBlank():
		return EmptyNone
	case r.LoadFailed:
		return EmptyLoadFailed
	case len(r.Shown) > 0:
		return EmptyNone
	case r.TotalCandidates == 0 || filter.IsBlank(r.Term):
		return EmptyNoCandidates
	default:
		return EmptyAllExcluded
	}
}
