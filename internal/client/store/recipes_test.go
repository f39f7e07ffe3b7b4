package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
)

type fakeRecipeAPI struct {
	pages map[int]models.Page[models.Recipe]

	lastFilter api.RecipeFilter
	nextID     int64
}

func (f *fakeRecipeAPI) Recipes(_ context.Context, filter api.RecipeFilter) (*models.Page[models.Recipe], *api.Problem) {
	f.lastFilter = filter
	p, ok := f.pages[filter.PageNumber]
	if !ok {
		p = models.EmptyPage[models.Recipe]()
	}
	return &p, nil
}

func (f *fakeRecipeAPI) Recipe(_ context.Context, id int64) (*models.Recipe, *api.Problem) {
	for _, p := range f.pages {
		for _, r := range p.Items {
			if r.ID == id {
				return &r, nil
			}
		}
	}
	return nil, &api.Problem{Kind: api.KindNotFound}
}

func (f *fakeRecipeAPI) CreateRecipe(_ context.Context, _ models.RecipeDraft) (int64, *api.Problem) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeRecipeAPI) UpdateRecipe(context.Context, int64, models.RecipeDraft) *api.Problem {
	return nil
}

func (f *fakeRecipeAPI) DeleteRecipe(context.Context, int64) *api.Problem {
	return nil
}

func recipePages() map[int]models.Page[models.Recipe] {
	return map[int]models.Page[models.Recipe]{
		1: {
			Items:      []models.Recipe{{ID: 10, CookbookID: 1, Name: "Borscht"}, {ID: 11, CookbookID: 1, Name: "Okroshka"}},
			PageNumber: 1, TotalPages: 2, TotalCount: 3,
		},
		2: {
			Items:      []models.Recipe{{ID: 12, CookbookID: 1, Name: "Solyanka"}},
			PageNumber: 2, TotalPages: 2, TotalCount: 3,
		},
	}
}

func TestRecipeStoreFetchPassesFilter(t *testing.T) {
	fake := &fakeRecipeAPI{pages: recipePages()}
	s := NewRecipeStore(fake, 15, testLogger())

	require.Nil(t, s.Fetch(context.Background(), 1, "bor", 1))
	assert.Equal(t, api.RecipeFilter{CookbookID: 1, Name: "bor", PageNumber: 1, PageSize: 15}, fake.lastFilter)
	assert.Len(t, s.Current().Items, 2)
}

func TestRecipeStoreSelectionResolvesAgainstCurrentPage(t *testing.T) {
	fake := &fakeRecipeAPI{pages: recipePages()}
	s := NewRecipeStore(fake, 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1, "", 1))
	s.Select(10)

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "Borscht", selected.Name)

	// The selected recipe is evicted by the next page; the selection reads
	// as empty instead of pointing at a stale copy.
	require.Nil(t, s.Fetch(ctx, 1, "", 2))
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestRecipeStoreDeleteClearsSelection(t *testing.T) {
	fake := &fakeRecipeAPI{pages: recipePages()}
	s := NewRecipeStore(fake, 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1, "", 1))
	s.Select(11)

	require.Nil(t, s.Delete(ctx, 11))
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Len(t, s.Current().Items, 1)
}

func TestRecipeStoreCreateAppendsDraftEntity(t *testing.T) {
	fake := &fakeRecipeAPI{pages: recipePages(), nextID: 500}
	s := NewRecipeStore(fake, 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1, "", 1))

	created, prob := s.Create(ctx, models.RecipeDraft{CookbookID: 1, Name: "Pelmeni"})
	require.Nil(t, prob)
	assert.Equal(t, int64(501), created.ID)

	page := s.Current()
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Pelmeni", page.Items[2].Name)
	assert.Equal(t, 3, page.TotalCount)
}
