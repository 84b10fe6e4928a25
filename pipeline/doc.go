// Package pipeline turns a region and an exclusion term into the ordered
// list of recipes to show.
//
// A Pipeline run lists the region's candidates, resolves each candidate's
// detail through the shared cache.Resolver, and drops candidates whose
// ingredients match the exclusion term. Survivors keep listing order in
// both ModeSequential and ModeConcurrent. A candidate whose detail cannot
// be resolved is always shown.
//
// A Session drives a Presenter for one interactive user. Each trigger
// starts a new generation; older runs are canceled and can no longer reach
// the Presenter. Exclusion changes are debounced, region changes are not.
package pipeline
