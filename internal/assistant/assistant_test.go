package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hearth/internal/model"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

func TestPromptForHealthTypesCarryDisclaimer(t *testing.T) {
	for _, pt := range []model.PostType{model.PostFeeling, model.PostMedication, model.PostEvent} {
		prompt := PromptFor(model.Post{Type: pt, Author: "Mom", Content: "dizzy"})
		if !strings.Contains(prompt, "not medical advice") {
			t.Errorf("%s: prompt missing medical disclaimer", pt)
		}
	}
}

func TestPromptForTaskHasNoDisclaimer(t *testing.T) {
	prompt := PromptFor(model.Post{Type: model.PostTask, Author: "Dad", Content: "mow the lawn"})
	if strings.Contains(prompt, "not medical advice") {
		t.Error("task prompt should not carry the medical disclaimer")
	}
	if !strings.Contains(prompt, "mow the lawn") {
		t.Error("prompt should include the post content")
	}
}

func TestMealPromptListsInStockIngredients(t *testing.T) {
	prompt := MealPrompt([]model.InventoryItem{
		{Name: "Eggs", Category: model.CategoryIngredient, Status: model.StockInStock},
		{Name: "Dish soap", Category: model.CategoryCleaning, Status: model.StockInStock},
		{Name: "Spinach", Category: model.CategoryIngredient, Status: model.StockInStock},
	})
	if !strings.Contains(prompt, "Eggs") || !strings.Contains(prompt, "Spinach") {
		t.Errorf("prompt missing ingredients: %q", prompt)
	}
	if strings.Contains(prompt, "Dish soap") {
		t.Error("non-food items do not belong in a meal prompt")
	}
}

func TestMealPromptEmptyPantry(t *testing.T) {
	prompt := MealPrompt(nil)
	if !strings.Contains(prompt, "shopping list") {
		t.Errorf("empty-pantry prompt should ask for a shopping list: %q", prompt)
	}
}

func TestSuggestReturnsGeneratorContent(t *testing.T) {
	got := Suggest(context.Background(), stubGenerator{reply: "Take breaks."}, model.Post{Type: model.PostTask})
	if got != "Take breaks." {
		t.Errorf("suggestion = %q, want generator content", got)
	}
}

func TestSuggestFallsBackToApology(t *testing.T) {
	got := Suggest(context.Background(), stubGenerator{err: errors.New("timeout")}, model.Post{Type: model.PostTask})
	if got != Apology {
		t.Errorf("suggestion = %q, want apology", got)
	}

	got = Suggest(context.Background(), stubGenerator{reply: ""}, model.Post{Type: model.PostTask})
	if got != Apology {
		t.Errorf("empty reply: suggestion = %q, want apology", got)
	}
}
