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

// Cookbooks fetches one page of the user's cookbooks.
func (c *HTTPClient) Cookbooks(ctx context.Context, page, size int) (*models.Page[models.Cookbook], *Problem) {
	q := url.Values{}
	q.Set("PageNumber", strconv.Itoa(page))
	q.Set("PageSize", strconv.Itoa(size))

	resp, err := c.AuthorizedRequest(ctx, http.MethodGet, "Cookbooks", q, nil)
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}
	return decodePage[models.Cookbook](resp.Body)
}

// CreateCookbook creates a cookbook and returns the server-assigned id.
func (c *HTTPClient) CreateCookbook(ctx context.Context, draft models.CookbookDraft) (int64, *Problem) {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPost, "Cookbooks", nil, draft)
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
		return 0, badData("cookbook id missing")
	}
	return out.ID, nil
}

func (c *HTTPClient) UpdateCookbook(ctx context.Context, id int64, draft models.CookbookDraft) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPut, fmt.Sprintf("Cookbooks/%d", id), nil, draft)
	return problem(resp, err)
}

func (c *HTTPClient) DeleteCookbook(ctx context.Context, id int64) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodDelete, fmt.Sprintf("Cookbooks/%d", id), nil, nil)
	return problem(resp, err)
}
