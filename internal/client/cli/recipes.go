package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvolkov/tastebook/internal/client/api"
)

func (a *App) cmdRecipes(ctx context.Context, cookbookID int64, name string, pageNumber int) {
	if prob := a.recipes.Fetch(ctx, cookbookID, name, pageNumber); prob != nil {
		a.printProblem(prob)
		return
	}
	page := a.recipes.Current()
	if len(page.Items) == 0 {
		if name != "" {
			fmt.Fprintf(a.out, "No recipes matching %q.\n", name)
		} else {
			fmt.Fprintln(a.out, "No recipes.")
		}
		return
	}
	for _, r := range page.Items {
		line := fmt.Sprintf("[%d] %s", r.ID, r.Name)
		if t := formatMinutes(r.PrepTimeMinutes, r.CookTimeMinutes); t != "" {
			line += " (" + t + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	a.printPageInfo(page.PageNumber, page.TotalPages, page.TotalCount)
}

func (a *App) cmdShowRecipe(ctx context.Context, id int64) {
	recipe, prob := a.recipes.Details(ctx, id)
	if prob != nil {
		a.printProblem(prob)
		return
	}
	a.recipes.Select(id)

	fmt.Fprintf(a.out, "%s\n", recipe.Name)
	if t := formatMinutes(recipe.PrepTimeMinutes, recipe.CookTimeMinutes); t != "" {
		fmt.Fprintln(a.out, t)
	}
	if recipe.Description != "" {
		fmt.Fprintln(a.out, recipe.Description)
	}
	if len(recipe.Ingredients) > 0 {
		fmt.Fprintln(a.out, "Ingredients:")
		for _, ing := range recipe.Ingredients {
			fmt.Fprintf(a.out, "  - %s\n", ing)
		}
	}
	if len(recipe.Instructions) > 0 {
		fmt.Fprintln(a.out, "Instructions:")
		for i, step := range recipe.Instructions {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, step)
		}
	}
	if len(recipe.ImageNames) > 0 {
		fmt.Fprintf(a.out, "Images: %s\n", strings.Join(recipe.ImageNames, ", "))
	}
}

func (a *App) cmdAddRecipe(ctx context.Context, cookbookID int64) {
	draft, ok := a.readRecipeDraft(ctx, cookbookID)
	if !ok {
		return
	}
	recipe, prob := a.recipes.Create(ctx, draft)
	if prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Created recipe [%d] %s.\n", recipe.ID, recipe.Name)
}

func (a *App) cmdDelRecipe(ctx context.Context, id int64) {
	if prob := a.recipes.Delete(ctx, id); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Deleted recipe [%d].\n", id)
}

// cmdUpload reads local image files and uploads them, printing the
// server-assigned names for use in drafts.
func (a *App) cmdUpload(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "usage: upload <file> [file...]")
		return
	}
	uploads := make([]api.ImageUpload, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot read %s: %v\n", path, err)
			return
		}
		uploads = append(uploads, api.ImageUpload{
			Name:    filepath.Base(path),
			Content: content,
		})
	}
	names, prob := a.api.UploadImages(ctx, uploads)
	if prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Uploaded: %s\n", strings.Join(names, ", "))
}
