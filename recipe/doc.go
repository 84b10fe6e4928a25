// Package recipe defines the catalog data model shared by every other
// package: regions, listing summaries, full recipe details and their
// ingredient sequences.
//
// A Detail's ingredients arrive upstream as twenty fixed numbered slots.
// AssembleIngredients rebuilds the ordered sequence from those slots,
// dropping blank ones:
//
//	ings := recipe.AssembleIngredients([]recipe.Slot{
//	    {Ingredient: "Flour", Measure: "2 cups"},
//	    {Ingredient: ""},
//	    {Ingredient: "Salt"},
//	})
//	// ings[0].String() == "2 cups Flour", ings[1].String() == "Salt"
package recipe
