package pipeline

import "github.com/jonwraymond/mealscout/recipe"

// Presenter renders pipeline output.
//
// Contract:
//   - Concurrency: a Session serializes calls; implementations need not be
//     safe for concurrent use.
//   - Reentrancy: implementations must not call back into the Session.
//   - Ownership: slices and details passed in may be retained but must not
//     be modified.
type Presenter interface {
	// Clear discards previously rendered results.
	Clear()

	// ShowRegions renders the selectable regions.
	ShowRegions(regions []recipe.Region)

	// AddCard renders one surviving recipe, in listing order.
	AddCard(summary recipe.Summary)

	// ShowEmpty renders an empty-state message.
	ShowEmpty(message string)

	// ShowDetail renders a recipe overlay.
	ShowDetail(detail *recipe.Detail)

	// ShowError reports a user-facing failure.
	ShowError(message string)
}
