package store

import (
	"context"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/logging"
)

type recipeAPI interface {
	Recipes(ctx context.Context, f api.RecipeFilter) (*models.Page[models.Recipe], *api.Problem)
	Recipe(ctx context.Context, id int64) (*models.Recipe, *api.Problem)
	CreateRecipe(ctx context.Context, draft models.RecipeDraft) (int64, *api.Problem)
	UpdateRecipe(ctx context.Context, id int64, draft models.RecipeDraft) *api.Problem
	DeleteRecipe(ctx context.Context, id int64) *api.Problem
}

// RecipeStore caches one page of recipes for the cookbook being browsed and
// tracks the selected recipe by identity. A selection whose recipe was
// evicted by a later fetch reads as "nothing selected".
type RecipeStore struct {
	api      recipeAPI
	pages    *PageStore[models.Recipe]
	pageSize int
	log      logging.Logger

	selectedID int64 // 0 means no selection
}

func NewRecipeStore(client recipeAPI, pageSize int, log logging.Logger) *RecipeStore {
	return &RecipeStore{
		api:      client,
		pages:    NewPageStore(func(r models.Recipe) int64 { return r.ID }),
		pageSize: pageSize,
		log:      log,
	}
}

// Fetch replaces the page with recipes of the given cookbook, optionally
// filtered by name substring.
func (s *RecipeStore) Fetch(ctx context.Context, cookbookID int64, name string, pageNumber int) *api.Problem {
	ticket := s.pages.begin()
	page, prob := s.api.Recipes(ctx, api.RecipeFilter{
		CookbookID: cookbookID,
		Name:       name,
		PageNumber: pageNumber,
		PageSize:   s.pageSize,
	})
	if prob != nil {
		s.log.Warn(ctx, "recipe fetch failed", "cookbook", cookbookID, "page", pageNumber, "kind", prob.Kind)
		return prob
	}
	if !s.pages.apply(ticket, *page) {
		s.log.Debug(ctx, "discarded stale recipe page", "page", pageNumber)
	}
	return nil
}

// Details fetches a single recipe with full fields, bypassing the cache.
func (s *RecipeStore) Details(ctx context.Context, id int64) (*models.Recipe, *api.Problem) {
	return s.api.Recipe(ctx, id)
}

func (s *RecipeStore) Create(ctx context.Context, draft models.RecipeDraft) (*models.Recipe, *api.Problem) {
	id, prob := s.api.CreateRecipe(ctx, draft)
	if prob != nil {
		return nil, prob
	}
	recipe := draft.Entity(id)
	s.pages.Append(recipe)
	return &recipe, nil
}

func (s *RecipeStore) Update(ctx context.Context, id int64, draft models.RecipeDraft) *api.Problem {
	if prob := s.api.UpdateRecipe(ctx, id, draft); prob != nil {
		return prob
	}
	s.pages.Replace(id, draft.Entity(id))
	return nil
}

func (s *RecipeStore) Delete(ctx context.Context, id int64) *api.Problem {
	if prob := s.api.DeleteRecipe(ctx, id); prob != nil {
		return prob
	}
	s.pages.Remove(id)
	if s.selectedID == id {
		s.selectedID = 0
	}
	return nil
}

// Select points the store at a recipe by identity.
func (s *RecipeStore) Select(id int64) {
	s.selectedID = id
}

// Selected resolves the selection against the current page.
func (s *RecipeStore) Selected() (models.Recipe, bool) {
	if s.selectedID == 0 {
		return models.Recipe{}, false
	}
	return s.pages.Get(s.selectedID)
}

func (s *RecipeStore) Current() models.Page[models.Recipe] {
	return s.pages.Current()
}
