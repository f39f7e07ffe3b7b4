package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/testapi"
)

// newTestClient wires an HTTPClient to the fake API and logs it in.
func newTestClient(t *testing.T) (*HTTPClient, *testapi.Server) {
	t.Helper()
	srv := testapi.New()
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL(), 2*time.Second, &memTokens{}, testLogger())
	_, prob := c.Login(context.Background(), "cook@example.com", "secret")
	require.Nil(t, prob)
	return c, srv
}

func TestLoginStoresTokens(t *testing.T) {
	srv := testapi.New()
	defer srv.Close()

	tokens := &memTokens{}
	c := NewHTTPClient(srv.URL(), 2*time.Second, tokens, testLogger())

	session, prob := c.Login(context.Background(), "cook@example.com", "secret")
	require.Nil(t, prob)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Equal(t, session.AccessToken, tokens.access)
	assert.Equal(t, 1, tokens.saves)
	assert.Equal(t, 1, srv.LoginCalls())
}

func TestLoginRejectedCredentialsDoNotSpendRefreshToken(t *testing.T) {
	c, srv := newTestClient(t)

	// An empty password is rejected with 400; the refresh path must stay
	// untouched because this is not a session expiry.
	_, prob := c.Login(context.Background(), "cook@example.com", "")
	require.NotNil(t, prob)
	assert.Equal(t, KindRejected, prob.Kind)
	assert.Equal(t, 0, srv.RefreshCalls())
}

func TestRegister(t *testing.T) {
	srv := testapi.New()
	defer srv.Close()
	c := NewHTTPClient(srv.URL(), 2*time.Second, &memTokens{}, testLogger())

	prob := c.Register(context.Background(), "new@example.com", "secret", "New Cook")
	assert.Nil(t, prob)
}

func TestExpiredAccessTokenIsRefreshedTransparently(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SeedCookbooks([]models.Cookbook{{ID: 1, Title: "Soups"}})

	srv.ExpireAccess()

	page, prob := c.Cookbooks(context.Background(), 1, 10)
	require.Nil(t, prob)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, srv.RefreshCalls())
}

func TestFailedRefreshSurfacesUnauthorized(t *testing.T) {
	c, srv := newTestClient(t)
	var expired int
	c.OnSessionExpired(func() { expired++ })

	srv.ExpireAccess()
	srv.FailRefresh(true)

	_, prob := c.Cookbooks(context.Background(), 1, 10)
	require.NotNil(t, prob)
	assert.Equal(t, KindUnauthorized, prob.Kind)
	assert.Equal(t, 1, expired)
}

func TestCookbooksPagination(t *testing.T) {
	c, srv := newTestClient(t)

	var seed []models.Cookbook
	for i := int64(1); i <= 25; i++ {
		seed = append(seed, models.Cookbook{ID: i, Title: "Book"})
	}
	srv.SeedCookbooks(seed)

	page, prob := c.Cookbooks(context.Background(), 2, 10)
	require.Nil(t, prob)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, int64(11), page.Items[0].ID)
}

func TestCookbookLifecycle(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	id, prob := c.CreateCookbook(ctx, models.CookbookDraft{Title: "Desserts"})
	require.Nil(t, prob)
	require.NotZero(t, id)

	prob = c.UpdateCookbook(ctx, id, models.CookbookDraft{Title: "Desserts & Cakes"})
	require.Nil(t, prob)
	require.Len(t, srv.Cookbooks(), 1)
	assert.Equal(t, "Desserts & Cakes", srv.Cookbooks()[0].Title)

	prob = c.DeleteCookbook(ctx, id)
	require.Nil(t, prob)
	assert.Empty(t, srv.Cookbooks())

	prob = c.DeleteCookbook(ctx, id)
	require.NotNil(t, prob)
	assert.Equal(t, KindNotFound, prob.Kind)
}

func TestRecipeLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	draft := models.RecipeDraft{
		CookbookID:      7,
		Name:            "Borscht",
		Ingredients:     []string{"beets", "cabbage"},
		Instructions:    []string{"chop", "simmer"},
		PrepTimeMinutes: 20,
		CookTimeMinutes: 60,
	}
	id, prob := c.CreateRecipe(ctx, draft)
	require.Nil(t, prob)

	recipe, prob := c.Recipe(ctx, id)
	require.Nil(t, prob)
	assert.Equal(t, "Borscht", recipe.Name)
	assert.Equal(t, []string{"beets", "cabbage"}, recipe.Ingredients)

	page, prob := c.Recipes(ctx, RecipeFilter{CookbookID: 7, PageNumber: 1, PageSize: 10})
	require.Nil(t, prob)
	require.Len(t, page.Items, 1)

	filtered, prob := c.Recipes(ctx, RecipeFilter{CookbookID: 7, Name: "bor", PageNumber: 1, PageSize: 10})
	require.Nil(t, prob)
	assert.Len(t, filtered.Items, 1)

	missed, prob := c.Recipes(ctx, RecipeFilter{CookbookID: 7, Name: "pizza", PageNumber: 1, PageSize: 10})
	require.Nil(t, prob)
	assert.Empty(t, missed.Items)

	prob = c.DeleteRecipe(ctx, id)
	require.Nil(t, prob)

	_, prob = c.Recipe(ctx, id)
	require.NotNil(t, prob)
	assert.Equal(t, KindNotFound, prob.Kind)
}

func TestMemberships(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	srv.SeedMemberships(3, []models.Membership{
		{ID: 31, Email: "owner@example.com", IsOwner: true},
		{ID: 32, Email: "guest@example.com"},
	})

	page, prob := c.Memberships(ctx, 3, 1, 10)
	require.Nil(t, prob)
	require.Len(t, page.Items, 2)

	perms := models.MembershipPermissions{CanAddRecipe: true, CanSendInvite: true}
	prob = c.UpdateMembership(ctx, 32, perms)
	require.Nil(t, prob)

	page, prob = c.Memberships(ctx, 3, 1, 10)
	require.Nil(t, prob)
	assert.Equal(t, perms, page.Items[1].MembershipPermissions)

	prob = c.DeleteMembership(ctx, 32)
	require.Nil(t, prob)

	page, prob = c.Memberships(ctx, 3, 1, 10)
	require.Nil(t, prob)
	assert.Len(t, page.Items, 1)
}

func TestInvitations(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	srv.SeedInvitations([]models.Invitation{
		{ID: 51, CookbookID: 3, CookbookTitle: "Soups", SenderName: "Anna", SentAt: time.Now().UTC()},
	})

	page, prob := c.Invitations(ctx, 1, 10)
	require.Nil(t, prob)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Soups", page.Items[0].CookbookTitle)

	prob = c.SendInvitation(ctx, 3, "friend@example.com")
	require.Nil(t, prob)

	prob = c.RespondInvitation(ctx, 51, true)
	require.Nil(t, prob)

	page, prob = c.Invitations(ctx, 1, 10)
	require.Nil(t, prob)
	assert.Empty(t, page.Items)
}

func TestUsers(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	name, prob := c.DisplayName(ctx)
	require.Nil(t, prob)
	assert.Equal(t, "Test Cook", name)

	prob = c.UpdateUser(ctx, models.UserDraft{DisplayName: "Chef"})
	require.Nil(t, prob)

	name, prob = c.DisplayName(ctx)
	require.Nil(t, prob)
	assert.Equal(t, "Chef", name)
}

func TestUploadImages(t *testing.T) {
	c, _ := newTestClient(t)

	names, prob := c.UploadImages(context.Background(), []ImageUpload{
		{Name: "soup.png", Content: []byte{1, 2, 3}},
		{Name: "cake.png", Content: []byte{4, 5}},
	})
	require.Nil(t, prob)
	require.Len(t, names, 2)
	assert.NotEqual(t, names[0], names[1])
}

func TestMalformedResponsesAreBadData(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(c *HTTPClient) *Problem
	}{
		{
			name: "cookbook page garbage",
			body: `{"items":`,
			call: func(c *HTTPClient) *Problem {
				_, prob := c.Cookbooks(context.Background(), 1, 10)
				return prob
			},
		},
		{
			name: "cookbook page without metadata",
			body: `{"items":[]}`,
			call: func(c *HTTPClient) *Problem {
				_, prob := c.Cookbooks(context.Background(), 1, 10)
				return prob
			},
		},
		{
			name: "display name missing",
			body: `{}`,
			call: func(c *HTTPClient) *Problem {
				_, prob := c.DisplayName(context.Background())
				return prob
			},
		},
		{
			name: "create without id",
			body: `{}`,
			call: func(c *HTTPClient) *Problem {
				_, prob := c.CreateCookbook(context.Background(), models.CookbookDraft{Title: "x"})
				return prob
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second, &memTokens{access: "a"}, testLogger())
			prob := tt.call(c)
			require.NotNil(t, prob)
			assert.Equal(t, KindBadData, prob.Kind)
		})
	}
}

func TestLoginMalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"a"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, &memTokens{}, testLogger())
	_, prob := c.Login(context.Background(), "cook@example.com", "secret")
	require.NotNil(t, prob)
	assert.Equal(t, KindBadData, prob.Kind)
}
