package store

import (
	"context"
	"sync"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/logging"
)

// cookbookAPI is the slice of the API client this store needs.
type cookbookAPI interface {
	Cookbooks(ctx context.Context, page, size int) (*models.Page[models.Cookbook], *api.Problem)
	CreateCookbook(ctx context.Context, draft models.CookbookDraft) (int64, *api.Problem)
	UpdateCookbook(ctx context.Context, id int64, draft models.CookbookDraft) *api.Problem
	DeleteCookbook(ctx context.Context, id int64) *api.Problem
}

// FavoritesRepository persists favorite cookbook ids. Satisfied by
// repositories/favorites.SQLiteRepository.
type FavoritesRepository interface {
	List(ctx context.Context) ([]int64, error)
	Add(ctx context.Context, cookbookID int64) error
	Remove(ctx context.Context, cookbookID int64) error
}

// CookbookStore caches the current page of cookbooks and the favorites set.
//
// Favorites are identity references, not copies: a favorite whose cookbook
// was evicted by a later fetch simply dangles until the cookbook reappears,
// and readers must treat it as "favorite of an unknown item".
type CookbookStore struct {
	api      cookbookAPI
	pages    *PageStore[models.Cookbook]
	pageSize int
	log      logging.Logger

	mu        sync.Mutex
	favorites map[int64]struct{}
	favRepo   FavoritesRepository
}

func NewCookbookStore(client cookbookAPI, favRepo FavoritesRepository, pageSize int, log logging.Logger) *CookbookStore {
	return &CookbookStore{
		api:       client,
		pages:     NewPageStore(func(c models.Cookbook) int64 { return c.ID }),
		pageSize:  pageSize,
		log:       log,
		favorites: map[int64]struct{}{},
		favRepo:   favRepo,
	}
}

// Fetch replaces the page wholesale. On failure the previous page stays
// visible and the problem is returned for the caller to surface.
func (s *CookbookStore) Fetch(ctx context.Context, pageNumber int) *api.Problem {
	ticket := s.pages.begin()
	page, prob := s.api.Cookbooks(ctx, pageNumber, s.pageSize)
	if prob != nil {
		s.log.Warn(ctx, "cookbook fetch failed", "page", pageNumber, "kind", prob.Kind)
		return prob
	}
	if !s.pages.apply(ticket, *page) {
		s.log.Debug(ctx, "discarded stale cookbook page", "page", pageNumber)
	}
	return nil
}

// Create posts the draft and optimistically appends the resulting cookbook.
// TotalCount and TotalPages are left as fetched until the next Fetch.
func (s *CookbookStore) Create(ctx context.Context, draft models.CookbookDraft) (*models.Cookbook, *api.Problem) {
	id, prob := s.api.CreateCookbook(ctx, draft)
	if prob != nil {
		return nil, prob
	}
	cookbook := draft.Entity(id)
	s.pages.Append(cookbook)
	return &cookbook, nil
}

// Update pushes the draft and patches the cached item in place, preserving
// server-derived counters the draft does not carry.
func (s *CookbookStore) Update(ctx context.Context, id int64, draft models.CookbookDraft) *api.Problem {
	if prob := s.api.UpdateCookbook(ctx, id, draft); prob != nil {
		return prob
	}
	if current, ok := s.pages.Get(id); ok {
		current.Title = draft.Title
		current.Description = draft.Description
		current.ImageName = draft.ImageName
		s.pages.Replace(id, current)
	}
	return nil
}

// Delete removes the cookbook remotely, then splices it and its favorite
// reference out locally. Totals stay as fetched.
func (s *CookbookStore) Delete(ctx context.Context, id int64) *api.Problem {
	if prob := s.api.DeleteCookbook(ctx, id); prob != nil {
		return prob
	}
	s.pages.Remove(id)

	s.mu.Lock()
	_, wasFavorite := s.favorites[id]
	delete(s.favorites, id)
	s.mu.Unlock()
	if wasFavorite && s.favRepo != nil {
		if err := s.favRepo.Remove(ctx, id); err != nil {
			s.log.Warn(ctx, "failed to drop favorite of deleted cookbook", "id", id, "error", err)
		}
	}
	return nil
}

// ToggleFavorite flips the local favorite mark and persists it. No server
// call is involved. Returns the new favorite state.
func (s *CookbookStore) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	_, wasFavorite := s.favorites[id]
	if wasFavorite {
		delete(s.favorites, id)
	} else {
		s.favorites[id] = struct{}{}
	}
	s.mu.Unlock()

	if s.favRepo == nil {
		return !wasFavorite, nil
	}
	var err error
	if wasFavorite {
		err = s.favRepo.Remove(ctx, id)
	} else {
		err = s.favRepo.Add(ctx, id)
	}
	return !wasFavorite, err
}

func (s *CookbookStore) IsFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[id]
	return ok
}

// LoadFavorites restores the persisted favorites set, typically at startup.
func (s *CookbookStore) LoadFavorites(ctx context.Context) error {
	if s.favRepo == nil {
		return nil
	}
	ids, err := s.favRepo.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.favorites[id] = struct{}{}
	}
	return nil
}

// Get resolves a cookbook from the current page by id.
func (s *CookbookStore) Get(id int64) (models.Cookbook, bool) {
	return s.pages.Get(id)
}

func (s *CookbookStore) Current() models.Page[models.Cookbook] {
	return s.pages.Current()
}
