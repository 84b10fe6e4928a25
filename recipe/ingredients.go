package recipe

import "strings"

// MaxIngredientSlots is the number of numbered ingredient/measure slots in
// an upstream recipe record.
const MaxIngredientSlots = 20

// Slot is one raw numbered ingredient/measure pair as sent upstream.
type Slot struct {
	Ingredient string
	Measure    string
}

// AssembleIngredients reconstructs the ordered ingredient sequence from raw
// slots. Slots with a blank ingredient name are skipped, order is kept, and
// both name and measure are trimmed. Only the first MaxIngredientSlots
// slots are considered.
func AssembleIngredients(slots []Slot) []Ingredient {
	if len(slots) > MaxIngredientSlots {
		slots = slots[:MaxIngredientSlots]
	}

	out := make([]Ingredient, 0, len(slots))
	for _, s := range slots {
		name := strings.TrimSpace(s.Ingredient)
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			Measure: strings.TrimSpace(s.Measure),
			Name:    name,
		})
	}
	return out
}
