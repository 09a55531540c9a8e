// Package inventory infers a stock category from an item's name so the
// kiosk can file quick entries without asking.
package inventory

import (
	"strings"

	"hearth/internal/model"
)

// Categorize returns the stock category for the given item name. Matching
// is case-insensitive: exact match first, then substring match. Unknown
// names fall back to the household category.
func Categorize(itemName string) model.InventoryCategory {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return model.CategoryHousehold
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Substring entries are ordered longer/more-specific first
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return model.CategoryHousehold
}

var exactMatch = map[string]model.InventoryCategory{
	// Ingredients
	"milk":          model.CategoryIngredient,
	"eggs":          model.CategoryIngredient,
	"butter":        model.CategoryIngredient,
	"cheese":        model.CategoryIngredient,
	"yogurt":        model.CategoryIngredient,
	"bread":         model.CategoryIngredient,
	"rice":          model.CategoryIngredient,
	"pasta":         model.CategoryIngredient,
	"flour":         model.CategoryIngredient,
	"sugar":         model.CategoryIngredient,
	"salt":          model.CategoryIngredient,
	"olive oil":     model.CategoryIngredient,
	"soy sauce":     model.CategoryIngredient,
	"vinegar":       model.CategoryIngredient,
	"honey":         model.CategoryIngredient,
	"peanut butter": model.CategoryIngredient,
	"cereal":        model.CategoryIngredient,
	"oatmeal":       model.CategoryIngredient,
	"coffee":        model.CategoryIngredient,
	"tea":           model.CategoryIngredient,
	"juice":         model.CategoryIngredient,
	"chicken":       model.CategoryIngredient,
	"beef":          model.CategoryIngredient,
	"pork":          model.CategoryIngredient,
	"salmon":        model.CategoryIngredient,
	"shrimp":        model.CategoryIngredient,
	"tofu":          model.CategoryIngredient,
	"apples":        model.CategoryIngredient,
	"bananas":       model.CategoryIngredient,
	"tomatoes":      model.CategoryIngredient,
	"potatoes":      model.CategoryIngredient,
	"onions":        model.CategoryIngredient,
	"garlic":        model.CategoryIngredient,
	"lettuce":       model.CategoryIngredient,
	"spinach":       model.CategoryIngredient,
	"carrots":       model.CategoryIngredient,
	"broccoli":      model.CategoryIngredient,
	"mushrooms":     model.CategoryIngredient,
	"ginger":        model.CategoryIngredient,

	// Cleaning
	"dish soap":         model.CategoryCleaning,
	"laundry detergent": model.CategoryCleaning,
	"bleach":            model.CategoryCleaning,
	"cleaning spray":    model.CategoryCleaning,
	"sponges":           model.CategoryCleaning,
	"glass cleaner":     model.CategoryCleaning,
	"floor cleaner":     model.CategoryCleaning,
	"disinfectant":      model.CategoryCleaning,

	// Household
	"paper towels":  model.CategoryHousehold,
	"toilet paper":  model.CategoryHousehold,
	"trash bags":    model.CategoryHousehold,
	"aluminum foil": model.CategoryHousehold,
	"plastic wrap":  model.CategoryHousehold,
	"light bulbs":   model.CategoryHousehold,
	"batteries":     model.CategoryHousehold,
	"napkins":       model.CategoryHousehold,
	"tissues":       model.CategoryHousehold,
	"shampoo":       model.CategoryHousehold,
	"toothpaste":    model.CategoryHousehold,
	"band-aids":     model.CategoryHousehold,
}

type substringEntry struct {
	keyword  string
	category model.InventoryCategory
}

var substringMatches = []substringEntry{
	// Cleaning, longer phrases first so "dish soap refill" beats "soap"
	{"laundry detergent", model.CategoryCleaning},
	{"dish soap", model.CategoryCleaning},
	{"all-purpose cleaner", model.CategoryCleaning},
	{"detergent", model.CategoryCleaning},
	{"cleaner", model.CategoryCleaning},
	{"cleaning", model.CategoryCleaning},
	{"bleach", model.CategoryCleaning},
	{"sponge", model.CategoryCleaning},
	{"disinfect", model.CategoryCleaning},
	{"scrub", model.CategoryCleaning},

	// Household
	{"paper towel", model.CategoryHousehold},
	{"toilet paper", model.CategoryHousehold},
	{"trash bag", model.CategoryHousehold},
	{"garbage bag", model.CategoryHousehold},
	{"light bulb", model.CategoryHousehold},
	{"battery", model.CategoryHousehold},
	{"batteries", model.CategoryHousehold},
	{"foil", model.CategoryHousehold},
	{"ziplock", model.CategoryHousehold},
	{"tissue", model.CategoryHousehold},
	{"shampoo", model.CategoryHousehold},
	{"conditioner", model.CategoryHousehold},
	{"toothpaste", model.CategoryHousehold},
	{"toothbrush", model.CategoryHousehold},
	{"deodorant", model.CategoryHousehold},
	{"lotion", model.CategoryHousehold},
	{"sunscreen", model.CategoryHousehold},

	// Ingredients
	{"chicken breast", model.CategoryIngredient},
	{"ground beef", model.CategoryIngredient},
	{"ground turkey", model.CategoryIngredient},
	{"cream cheese", model.CategoryIngredient},
	{"sour cream", model.CategoryIngredient},
	{"greek yogurt", model.CategoryIngredient},
	{"almond milk", model.CategoryIngredient},
	{"oat milk", model.CategoryIngredient},
	{"olive oil", model.CategoryIngredient},
	{"maple syrup", model.CategoryIngredient},
	{"hot sauce", model.CategoryIngredient},
	{"pasta sauce", model.CategoryIngredient},
	{"milk", model.CategoryIngredient},
	{"egg", model.CategoryIngredient},
	{"cheese", model.CategoryIngredient},
	{"yogurt", model.CategoryIngredient},
	{"butter", model.CategoryIngredient},
	{"cream", model.CategoryIngredient},
	{"bread", model.CategoryIngredient},
	{"bagel", model.CategoryIngredient},
	{"tortilla", model.CategoryIngredient},
	{"rice", model.CategoryIngredient},
	{"pasta", model.CategoryIngredient},
	{"noodle", model.CategoryIngredient},
	{"flour", model.CategoryIngredient},
	{"sugar", model.CategoryIngredient},
	{"spice", model.CategoryIngredient},
	{"seasoning", model.CategoryIngredient},
	{"sauce", model.CategoryIngredient},
	{"broth", model.CategoryIngredient},
	{"soup", model.CategoryIngredient},
	{"bean", model.CategoryIngredient},
	{"frozen", model.CategoryIngredient},
	{"juice", model.CategoryIngredient},
	{"coffee", model.CategoryIngredient},
	{"tea", model.CategoryIngredient},
	{"fruit", model.CategoryIngredient},
	{"berry", model.CategoryIngredient},
	{"berries", model.CategoryIngredient},
	{"apple", model.CategoryIngredient},
	{"banana", model.CategoryIngredient},
	{"tomato", model.CategoryIngredient},
	{"potato", model.CategoryIngredient},
	{"onion", model.CategoryIngredient},
	{"pepper", model.CategoryIngredient},
	{"carrot", model.CategoryIngredient},
	{"lettuce", model.CategoryIngredient},
	{"spinach", model.CategoryIngredient},
	{"fish", model.CategoryIngredient},
	{"meat", model.CategoryIngredient},
	{"pork", model.CategoryIngredient},
	{"beef", model.CategoryIngredient},
	{"chicken", model.CategoryIngredient},
	{"snack", model.CategoryIngredient},
	{"cookie", model.CategoryIngredient},
	{"cracker", model.CategoryIngredient},
	{"chip", model.CategoryIngredient},
	{"chocolate", model.CategoryIngredient},
}
