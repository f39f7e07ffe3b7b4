package api

import (
	"context"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// Client is the typed surface of the Tastebook API consumed by the stores
// and the CLI. HTTPClient is the production implementation; tests substitute
// hand-written fakes.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.Session, *Problem)
	Register(ctx context.Context, email, password, displayName string) *Problem
	DisplayName(ctx context.Context) (string, *Problem)
	UpdateUser(ctx context.Context, draft models.UserDraft) *Problem

	Cookbooks(ctx context.Context, page, size int) (*models.Page[models.Cookbook], *Problem)
	CreateCookbook(ctx context.Context, draft models.CookbookDraft) (int64, *Problem)
	UpdateCookbook(ctx context.Context, id int64, draft models.CookbookDraft) *Problem
	DeleteCookbook(ctx context.Context, id int64) *Problem

	Recipes(ctx context.Context, f RecipeFilter) (*models.Page[models.Recipe], *Problem)
	Recipe(ctx context.Context, id int64) (*models.Recipe, *Problem)
	CreateRecipe(ctx context.Context, draft models.RecipeDraft) (int64, *Problem)
	UpdateRecipe(ctx context.Context, id int64, draft models.RecipeDraft) *Problem
	DeleteRecipe(ctx context.Context, id int64) *Problem

	Memberships(ctx context.Context, cookbookID int64, page, size int) (*models.Page[models.Membership], *Problem)
	UpdateMembership(ctx context.Context, id int64, perms models.MembershipPermissions) *Problem
	DeleteMembership(ctx context.Context, id int64) *Problem

	Invitations(ctx context.Context, page, size int) (*models.Page[models.Invitation], *Problem)
	SendInvitation(ctx context.Context, cookbookID int64, email string) *Problem
	RespondInvitation(ctx context.Context, id int64, accept bool) *Problem

	UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, *Problem)
}

var _ Client = (*HTTPClient)(nil)
