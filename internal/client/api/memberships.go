package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// Memberships fetches one page of a cookbook's members.
func (c *HTTPClient) Memberships(ctx context.Context, cookbookID int64, page, size int) (*models.Page[models.Membership], *Problem) {
	q := url.Values{}
	q.Set("CookbookId", strconv.FormatInt(cookbookID, 10))
	q.Set("PageNumber", strconv.Itoa(page))
	q.Set("PageSize", strconv.Itoa(size))

	resp, err := c.AuthorizedRequest(ctx, http.MethodGet, "Memberships", q, nil)
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}
	return decodePage[models.Membership](resp.Body)
}

// UpdateMembership replaces a member's capability flags.
func (c *HTTPClient) UpdateMembership(ctx context.Context, id int64, perms models.MembershipPermissions) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPut, fmt.Sprintf("Memberships/%d", id), nil, perms)
	return problem(resp, err)
}

// DeleteMembership removes a member from a cookbook.
func (c *HTTPClient) DeleteMembership(ctx context.Context, id int64) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodDelete, fmt.Sprintf("Memberships/%d", id), nil, nil)
	return problem(resp, err)
}
