package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// RecipeFilter narrows a recipe listing. CookbookID is required by the API;
// Name is an optional substring filter.
type RecipeFilter struct {
	CookbookID int64
	Name       string
	PageNumber int
	PageSize   int
}

// Recipes fetches one page of recipes matching the filter.
func (c *HTTPClient) Recipes(ctx context.Context, f RecipeFilter) (*models.Page[models.Recipe], *Problem) {
	q := url.Values{}
	q.Set("CookbookId", strconv.FormatInt(f.CookbookID, 10))
	if f.Name != "" {
		q.Set("Name", f.Name)
	}
	q.Set("PageNumber", strconv.Itoa(f.PageNumber))
	q.Set("PageSize", strconv.Itoa(f.PageSize))

	resp, err := c.AuthorizedRequest(ctx, http.MethodGet, "Recipes", q, nil)
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}
	return decodePage[models.Recipe](resp.Body)
}

// Recipe fetches a single recipe with full details.
func (c *HTTPClient) Recipe(ctx context.Context, id int64) (*models.Recipe, *Problem) {
	resp, err := c.AuthorizedRequest(ctx, http.MethodGet, fmt.Sprintf("Recipes/%d", id), nil, nil)
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}

	var recipe models.Recipe
	if err := json.Unmarshal(resp.Body, &recipe); err != nil {
		return nil, badData(err.Error())
	}
	if recipe.ID == 0 || recipe.Name == "" {
		return nil, badData("recipe missing required fields")
	}
	return &recipe, nil
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, draft models.RecipeDraft) (int64, *Problem) {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPost, "Recipes", nil, draft)
	if prob := problem(resp, err); prob != nil {
		return 0, prob
	}

	var out struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return 0, badData(err.Error())
	}
	if out.ID == 0 {
		return 0, badData("recipe id missing")
	}
	return out.ID, nil
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, id int64, draft models.RecipeDraft) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPut, fmt.Sprintf("Recipes/%d", id), nil, draft)
	return problem(resp, err)
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, id int64) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodDelete, fmt.Sprintf("Recipes/%d", id), nil, nil)
	return problem(resp, err)
}
