package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// Invitations fetches one page of the user's pending invitations.
func (c *HTTPClient) Invitations(ctx context.Context, page, size int) (*models.Page[models.Invitation], *Problem) {
	q := url.Values{}
	q.Set("PageNumber", strconv.Itoa(page))
	q.Set("PageSize", strconv.Itoa(size))

	resp, err := c.AuthorizedRequest(ctx, http.MethodGet, "Invitations", q, nil)
	if prob := problem(resp, err); prob != nil {
		return nil, prob
	}
	return decodePage[models.Invitation](resp.Body)
}

type sendInvitationRequest struct {
	CookbookID int64  `json:"cookbookId"`
	Email      string `json:"email"`
}

// SendInvitation invites a user by email into a cookbook.
func (c *HTTPClient) SendInvitation(ctx context.Context, cookbookID int64, email string) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPost, "Invitations", nil, sendInvitationRequest{CookbookID: cookbookID, Email: email})
	return problem(resp, err)
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

// RespondInvitation accepts or declines an invitation. Either way the
// invitation is spent on the server.
func (c *HTTPClient) RespondInvitation(ctx context.Context, id int64, accept bool) *Problem {
	resp, err := c.AuthorizedRequest(ctx, http.MethodPut, fmt.Sprintf("Invitations/%d", id), nil, respondInvitationRequest{Accept: accept})
	return problem(resp, err)
}
