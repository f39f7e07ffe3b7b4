package cli

import (
	"context"
	"fmt"
)

func (a *App) cmdBooks(ctx context.Context, pageNumber int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if prob := a.cookbooks.Fetch(ctx, pageNumber); prob != nil {
		a.printProblem(prob)
		return
	}
	page := a.cookbooks.Current()
	a.cookbookPage = page.PageNumber

	if len(page.Items) == 0 {
		fmt.Fprintln(a.out, "No cookbooks.")
		return
	}
	for _, cb := range page.Items {
		mark := "  "
		if a.cookbooks.IsFavorite(cb.ID) {
			mark = "* "
		}
		fmt.Fprintf(a.out, "%s[%d] %s (%d recipes, %d members)\n",
			mark, cb.ID, cb.Title, cb.RecipeCount, cb.MemberCount)
		if cb.Description != "" {
			fmt.Fprintf(a.out, "       %s\n", cb.Description)
		}
	}
	a.printPageInfo(page.PageNumber, page.TotalPages, page.TotalCount)
}

func (a *App) cmdAddBook(ctx context.Context) {
	draft, ok := a.readCookbookDraft(ctx, "", "")
	if !ok {
		return
	}
	cookbook, prob := a.cookbooks.Create(ctx, draft)
	if prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Created cookbook [%d] %s.\n", cookbook.ID, cookbook.Title)
}

func (a *App) cmdEditBook(ctx context.Context, id int64) {
	current, ok := a.cookbooks.Get(id)
	if !ok {
		fmt.Fprintln(a.out, "Cookbook is not on the current page; run 'books' first.")
		return
	}
	draft, ok := a.readCookbookDraft(ctx, current.Title, current.Description)
	if !ok {
		return
	}
	draft.ImageName = current.ImageName
	if prob := a.cookbooks.Update(ctx, id, draft); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Updated cookbook [%d].\n", id)
}

func (a *App) cmdDelBook(ctx context.Context, id int64) {
	if prob := a.cookbooks.Delete(ctx, id); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Deleted cookbook [%d].\n", id)
}

func (a *App) cmdFav(ctx context.Context, id int64) {
	favorite, err := a.cookbooks.ToggleFavorite(ctx, id)
	if err != nil {
		a.log.Warn(ctx, "failed to persist favorite", "id", id, "error", err)
	}
	if favorite {
		fmt.Fprintf(a.out, "Cookbook [%d] marked as favorite.\n", id)
	} else {
		fmt.Fprintf(a.out, "Cookbook [%d] unmarked.\n", id)
	}
}
