package inventory

import (
	"testing"

	"hearth/internal/model"
)

func TestCategorizeExactMatch(t *testing.T) {
	tests := []struct {
		input string
		want  model.InventoryCategory
	}{
		{"milk", model.CategoryIngredient},
		{"rice", model.CategoryIngredient},
		{"coffee", model.CategoryIngredient},
		{"dish soap", model.CategoryCleaning},
		{"bleach", model.CategoryCleaning},
		{"paper towels", model.CategoryHousehold},
		{"batteries", model.CategoryHousehold},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeSubstringMatch(t *testing.T) {
	tests := []struct {
		input string
		want  model.InventoryCategory
	}{
		{"boneless chicken breast", model.CategoryIngredient},
		{"whole wheat bread", model.CategoryIngredient},
		{"frozen peas", model.CategoryIngredient},
		{"dish soap refill", model.CategoryCleaning},
		{"all-purpose cleaner spray", model.CategoryCleaning},
		{"aaa batteries 12 pack", model.CategoryHousehold},
		{"recycled paper towel rolls", model.CategoryHousehold},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeCaseAndWhitespace(t *testing.T) {
	if got := Categorize("  MILK  "); got != model.CategoryIngredient {
		t.Errorf("Categorize with padding = %q, want %q", got, model.CategoryIngredient)
	}
}

func TestCategorizeUnknownFallsBack(t *testing.T) {
	for _, input := range []string{"", "mystery gadget", "xyzzy"} {
		if got := Categorize(input); got != model.CategoryHousehold {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, model.CategoryHousehold)
		}
	}
}
