// Package filter decides whether a recipe should be hidden because it
// contains a disliked ingredient.
//
// Matching is a case-insensitive substring test of the exclusion term
// against each ingredient name. A blank term disables filtering, and a nil
// detail is never excluded: absence of information is not treated as
// presence of the ingredient.
package filter
