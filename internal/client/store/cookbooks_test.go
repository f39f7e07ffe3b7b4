package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeCookbookAPI scripts responses per page and counts calls.
type fakeCookbookAPI struct {
	pages map[int]models.Page[models.Cookbook]

	fetchCalls  int
	createCalls int
	deleteCalls int
	updateCalls int

	nextID    int64
	fetchProb *api.Problem

	lastDraft models.CookbookDraft
}

func (f *fakeCookbookAPI) Cookbooks(_ context.Context, page, _ int) (*models.Page[models.Cookbook], *api.Problem) {
	f.fetchCalls++
	if f.fetchProb != nil {
		return nil, f.fetchProb
	}
	p, ok := f.pages[page]
	if !ok {
		p = models.EmptyPage[models.Cookbook]()
	}
	return &p, nil
}

func (f *fakeCookbookAPI) CreateCookbook(_ context.Context, draft models.CookbookDraft) (int64, *api.Problem) {
	f.createCalls++
	f.lastDraft = draft
	f.nextID++
	return f.nextID, nil
}

func (f *fakeCookbookAPI) UpdateCookbook(_ context.Context, _ int64, draft models.CookbookDraft) *api.Problem {
	f.updateCalls++
	f.lastDraft = draft
	return nil
}

func (f *fakeCookbookAPI) DeleteCookbook(_ context.Context, _ int64) *api.Problem {
	f.deleteCalls++
	return nil
}

// fakeFavorites is an in-memory FavoritesRepository.
type fakeFavorites struct {
	ids map[int64]struct{}
}

func newFakeFavorites() *fakeFavorites { return &fakeFavorites{ids: map[int64]struct{}{}} }

func (f *fakeFavorites) List(context.Context) ([]int64, error) {
	var out []int64
	for id := range f.ids {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeFavorites) Add(_ context.Context, id int64) error {
	f.ids[id] = struct{}{}
	return nil
}

func (f *fakeFavorites) Remove(_ context.Context, id int64) error {
	delete(f.ids, id)
	return nil
}

func twoPages() map[int]models.Page[models.Cookbook] {
	return map[int]models.Page[models.Cookbook]{
		1: {
			Items:      []models.Cookbook{{ID: 1, Title: "Soups", RecipeCount: 4}, {ID: 2, Title: "Salads"}},
			PageNumber: 1, TotalPages: 2, TotalCount: 3,
		},
		2: {
			Items:      []models.Cookbook{{ID: 3, Title: "Cakes"}},
			PageNumber: 2, TotalPages: 2, TotalCount: 3,
		},
	}
}

func TestCookbookStoreFetchReplacesWholesale(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages()}
	s := NewCookbookStore(fake, newFakeFavorites(), 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1))
	require.Len(t, s.Current().Items, 2)

	require.Nil(t, s.Fetch(ctx, 2))
	page := s.Current()
	// Items of page 1 are gone entirely, not merged.
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, 2, page.PageNumber)
}

func TestCookbookStoreFetchFailureKeepsOldPage(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages()}
	s := NewCookbookStore(fake, newFakeFavorites(), 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1))

	fake.fetchProb = &api.Problem{Kind: api.KindTimeout}
	prob := s.Fetch(ctx, 2)
	require.NotNil(t, prob)
	assert.Equal(t, api.KindTimeout, prob.Kind)

	// The previously fetched page stays visible.
	assert.Len(t, s.Current().Items, 2)
	assert.Equal(t, 1, s.Current().PageNumber)
}

func TestCookbookStoreCreateAppendsOptimistically(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages(), nextID: 100}
	s := NewCookbookStore(fake, newFakeFavorites(), 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1))

	created, prob := s.Create(ctx, models.CookbookDraft{Title: "Breads", Description: "Sourdough and friends"})
	require.Nil(t, prob)
	assert.Equal(t, int64(101), created.ID)

	page := s.Current()
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Breads", page.Items[2].Title)
	// The local entity carries no server-side counters.
	assert.Zero(t, page.Items[2].RecipeCount)
	// Totals stay as fetched until the next fetch.
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, fake.fetchCalls)
}

func TestCookbookStoreUpdatePreservesCounters(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages()}
	s := NewCookbookStore(fake, newFakeFavorites(), 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1))
	require.Nil(t, s.Update(ctx, 1, models.CookbookDraft{Title: "Hearty Soups"}))

	updated, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Hearty Soups", updated.Title)
	assert.Equal(t, 4, updated.RecipeCount)
}

func TestCookbookStoreDeleteSplicesAndDropsFavorite(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages()}
	favs := newFakeFavorites()
	s := NewCookbookStore(fake, favs, 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1))
	_, err := s.ToggleFavorite(ctx, 1)
	require.NoError(t, err)

	require.Nil(t, s.Delete(ctx, 1))

	page := s.Current()
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)
	assert.Equal(t, 3, page.TotalCount)
	assert.False(t, s.IsFavorite(1))
	assert.Empty(t, favs.ids)
}

func TestToggleFavoriteIsLocalOnly(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages()}
	favs := newFakeFavorites()
	s := NewCookbookStore(fake, favs, 10, testLogger())
	ctx := context.Background()

	on, err := s.ToggleFavorite(ctx, 7)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.IsFavorite(7))

	off, err := s.ToggleFavorite(ctx, 7)
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, s.IsFavorite(7))

	// Favorites never touch the network.
	assert.Zero(t, fake.fetchCalls)
	assert.Zero(t, fake.createCalls)
	assert.Zero(t, fake.updateCalls)
	assert.Zero(t, fake.deleteCalls)
}

func TestFavoriteMayDangleAcrossFetches(t *testing.T) {
	fake := &fakeCookbookAPI{pages: twoPages()}
	s := NewCookbookStore(fake, newFakeFavorites(), 10, testLogger())
	ctx := context.Background()

	require.Nil(t, s.Fetch(ctx, 1))
	_, err := s.ToggleFavorite(ctx, 1)
	require.NoError(t, err)

	// Cookbook 1 is not on page 2, but the favorite mark survives.
	require.Nil(t, s.Fetch(ctx, 2))
	assert.True(t, s.IsFavorite(1))
	_, onPage := s.Get(1)
	assert.False(t, onPage)
}

func TestLoadFavoritesRestoresPersistedSet(t *testing.T) {
	favs := newFakeFavorites()
	favs.ids[4] = struct{}{}
	favs.ids[9] = struct{}{}

	s := NewCookbookStore(&fakeCookbookAPI{}, favs, 10, testLogger())
	require.NoError(t, s.LoadFavorites(context.Background()))
	assert.True(t, s.IsFavorite(4))
	assert.True(t, s.IsFavorite(9))
	assert.False(t, s.IsFavorite(5))
}
