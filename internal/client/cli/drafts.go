package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// readCookbookDraft interactively collects a cookbook draft. Empty input
// keeps the passed-in value, so edits only change what the user retypes.
func (a *App) readCookbookDraft(ctx context.Context, title, description string) (models.CookbookDraft, bool) {
	newTitle, err := GetSimpleText(a.reader, promptWithDefault("Title", title), a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read title", "error", err)
		return models.CookbookDraft{}, false
	}
	if newTitle == "" {
		newTitle = title
	}
	if newTitle == "" {
		fmt.Fprintln(a.out, "A title is required.")
		return models.CookbookDraft{}, false
	}

	newDescription, err := GetSimpleText(a.reader, promptWithDefault("Description", description), a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read description", "error", err)
		return models.CookbookDraft{}, false
	}
	if newDescription == "" {
		newDescription = description
	}
	return models.CookbookDraft{Title: newTitle, Description: newDescription}, true
}

// readRecipeDraft interactively collects a recipe draft for a cookbook.
// Ingredients and instructions are entered one per line, blank line ends
// the list.
func (a *App) readRecipeDraft(ctx context.Context, cookbookID int64) (models.RecipeDraft, bool) {
	name, err := GetSimpleText(a.reader, "Recipe name:", a.out)
	if err != nil || name == "" {
		if err != nil {
			a.log.Error(ctx, "failed to read recipe name", "error", err)
		} else {
			fmt.Fprintln(a.out, "A name is required.")
		}
		return models.RecipeDraft{}, false
	}

	ingredients, ok := a.readLines(ctx, "Ingredients (one per line, blank line to finish):")
	if !ok {
		return models.RecipeDraft{}, false
	}
	instructions, ok := a.readLines(ctx, "Instructions (one per line, blank line to finish):")
	if !ok {
		return models.RecipeDraft{}, false
	}

	prep := a.readMinutes(ctx, "Prep time in minutes (blank for none):")
	cook := a.readMinutes(ctx, "Cook time in minutes (blank for none):")

	return models.RecipeDraft{
		CookbookID:      cookbookID,
		Name:            name,
		Ingredients:     ingredients,
		Instructions:    instructions,
		PrepTimeMinutes: prep,
		CookTimeMinutes: cook,
	}, true
}

func (a *App) readLines(ctx context.Context, prompt string) ([]string, bool) {
	fmt.Fprintln(a.out, prompt)
	var lines []string
	for {
		fmt.Fprint(a.out, "> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			a.log.Error(ctx, "failed to read input", "error", err)
			return nil, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return lines, true
		}
		lines = append(lines, line)
	}
}

func (a *App) readMinutes(ctx context.Context, prompt string) int {
	text, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil || text == "" {
		return 0
	}
	minutes, err := strconv.Atoi(text)
	if err != nil || minutes < 0 {
		fmt.Fprintln(a.out, "Not a number, skipping.")
		return 0
	}
	return minutes
}

func promptWithDefault(label, current string) string {
	if current == "" {
		return label + ":"
	}
	return fmt.Sprintf("%s [%s]:", label, current)
}
