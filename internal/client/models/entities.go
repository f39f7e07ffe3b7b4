// Package models defines the client-side data model: resource entities,
// their drafts, the paginated page envelope, and the session.
package models

import "time"

// Cookbook is a shared collection of recipes. Identity is the
// server-assigned ID and is stable across fetches.
type Cookbook struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageName   string `json:"imageName,omitempty"`
	RecipeCount int    `json:"recipeCount,omitempty"`
	MemberCount int    `json:"memberCount,omitempty"`
}

// CookbookDraft is the payload for creating or updating a cookbook.
type CookbookDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageName   string `json:"imageName,omitempty"`
}

// Entity builds the lightweight local cookbook appended after an
// optimistic create: draft fields plus the server-assigned id.
func (d CookbookDraft) Entity(id int64) Cookbook {
	return Cookbook{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		ImageName:   d.ImageName,
	}
}

type Recipe struct {
	ID              int64    `json:"id"`
	CookbookID      int64    `json:"cookbookId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Instructions    []string `json:"instructions,omitempty"`
	ImageNames      []string `json:"imageNames,omitempty"`
	PrepTimeMinutes int      `json:"prepTimeMinutes,omitempty"`
	CookTimeMinutes int      `json:"cookTimeMinutes,omitempty"`
}

type RecipeDraft struct {
	CookbookID      int64    `json:"cookbookId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Instructions    []string `json:"instructions,omitempty"`
	ImageNames      []string `json:"imageNames,omitempty"`
	PrepTimeMinutes int      `json:"prepTimeMinutes,omitempty"`
	CookTimeMinutes int      `json:"cookTimeMinutes,omitempty"`
}

func (d RecipeDraft) Entity(id int64) Recipe {
	return Recipe{
		ID:              id,
		CookbookID:      d.CookbookID,
		Name:            d.Name,
		Description:     d.Description,
		Ingredients:     d.Ingredients,
		Instructions:    d.Instructions,
		ImageNames:      d.ImageNames,
		PrepTimeMinutes: d.PrepTimeMinutes,
		CookTimeMinutes: d.CookTimeMinutes,
	}
}

// MembershipPermissions is the fixed set of capability flags a member holds
// within a cookbook. A fixed struct rather than a keyed map, so permission
// names are checked at compile time.
type MembershipPermissions struct {
	CanAddRecipe    bool `json:"canAddRecipe"`
	CanUpdateRecipe bool `json:"canUpdateRecipe"`
	CanDeleteRecipe bool `json:"canDeleteRecipe"`
	CanSendInvite   bool `json:"canSendInvite"`
	CanRemoveMember bool `json:"canRemoveMember"`
	CanEditCookbook bool `json:"canEditCookbook"`
}

type Membership struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	IsOwner     bool   `json:"isOwner,omitempty"`
	MembershipPermissions
}

type Invitation struct {
	ID            int64     `json:"id"`
	CookbookID    int64     `json:"cookbookId"`
	CookbookTitle string    `json:"cookbookTitle"`
	SenderName    string    `json:"senderName,omitempty"`
	SentAt        time.Time `json:"sentAt"`
}

// UserDraft is the payload for updating the authenticated user's profile.
type UserDraft struct {
	DisplayName string `json:"displayName"`
}
