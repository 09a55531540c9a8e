// Package assistant renders per-post prompts and fetches suggestion
// text from a generation provider.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"hearth/internal/model"
)

// Apology is shown when the provider fails. Callers never see the error.
const Apology = "Sorry, I couldn't come up with a suggestion right now. Please try again later."

const healthDisclaimer = "Include a gentle reminder that this is not medical advice and a doctor should be consulted for anything serious."

// Generator produces free-text content from a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PromptFor renders the suggestion prompt for a post based on its type.
func PromptFor(p model.Post) string {
	switch p.Type {
	case model.PostFeeling:
		return fmt.Sprintf(
			"A family member (%s) shared how they feel: %q. Suggest a short, warm response the family could give, and one small thing they could do to help. %s",
			p.Author, p.Content, healthDisclaimer)
	case model.PostMedication:
		return fmt.Sprintf(
			"A family member (%s) posted about medication: %q. Summarize what the family should keep in mind, in plain language. %s",
			p.Author, p.Content, healthDisclaimer)
	case model.PostEvent:
		return fmt.Sprintf(
			"A family member (%s) reported a health event: %q. Suggest sensible next steps for the family. %s",
			p.Author, p.Content, healthDisclaimer)
	case model.PostTask, model.PostChore:
		return fmt.Sprintf(
			"A family task was posted by %s: %q. Break it into two or three concrete steps and estimate how long it takes.",
			p.Author, p.Content)
	case model.PostAppointment:
		return fmt.Sprintf(
			"A family appointment was posted by %s: %q. Suggest what to prepare beforehand.",
			p.Author, p.Content)
	case model.PostMealSuggestion:
		return fmt.Sprintf(
			"A meal idea was posted by %s: %q. Suggest a simple recipe outline and a shopping list.",
			p.Author, p.Content)
	case model.PostDiscovery:
		return fmt.Sprintf(
			"A family member (%s) shared a discovery: %q. Add one interesting related fact, phrased for all ages.",
			p.Author, p.Content)
	default:
		return fmt.Sprintf("Respond helpfully and briefly to this family post by %s: %q.", p.Author, p.Content)
	}
}

// MealPrompt renders a meal-idea prompt from what the pantry has in
// stock. An empty pantry asks for a simple meal with a short shopping
// list instead.
func MealPrompt(inStock []model.InventoryItem) string {
	if len(inStock) == 0 {
		return "Suggest one simple family dinner idea and the short shopping list it needs. Keep it to a few sentences."
	}
	names := make([]string, 0, len(inStock))
	for _, it := range inStock {
		if it.Category == model.CategoryIngredient {
			names = append(names, it.Name)
		}
	}
	if len(names) == 0 {
		return "Suggest one simple family dinner idea and the short shopping list it needs. Keep it to a few sentences."
	}
	return fmt.Sprintf(
		"The pantry has these ingredients: %s. Suggest one family dinner that uses them, with a brief outline of the steps. Keep it to a few sentences.",
		strings.Join(names, ", "))
}

// Suggest renders the prompt for the post and runs the generator. Failure
// yields the apology string instead of an error.
func Suggest(ctx context.Context, g Generator, p model.Post) string {
	content, err := g.Generate(ctx, PromptFor(p))
	if err != nil || content == "" {
		return Apology
	}
	return content
}
