// Package store holds the client-side caches for paginated resources.
// Each store keeps exactly one page, replaces it wholesale on fetch, and
// supports optimistic local splices whose count staleness is part of the
// contract (see models.Page).
package store

import (
	"sync"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// PageStore is the shared single-page cache. It knows nothing about the
// network; resource stores drive it through fetch tickets.
//
// Tickets order concurrent fetches: begin issues a strictly increasing
// sequence number, and apply installs a page only if its ticket is still
// the latest issued. A slow response that resolves after a newer fetch was
// started is discarded instead of clobbering fresher data.
type PageStore[T any] struct {
	mu   sync.Mutex
	page models.Page[T]
	id   func(T) int64
	seq  uint64
}

// NewPageStore builds an empty store; id extracts an item's identity.
func NewPageStore[T any](id func(T) int64) *PageStore[T] {
	return &PageStore[T]{page: models.EmptyPage[T](), id: id}
}

// begin issues a fetch ticket.
func (s *PageStore[T]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// apply installs a fetched page if ticket is still the latest issued,
// reporting whether the page was taken.
func (s *PageStore[T]) apply(ticket uint64, page models.Page[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		return false
	}
	s.page = page
	return true
}

// Current returns a snapshot of the held page. The items slice is copied so
// callers cannot race with later splices.
func (s *PageStore[T]) Current() models.Page[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.page
	snapshot.Items = append([]T(nil), s.page.Items...)
	return snapshot
}

// Append adds an optimistically created item. Totals stay as fetched.
func (s *PageStore[T]) Append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.Items = append(s.page.Items, item)
}

// Remove splices out the item with the given identity. Totals stay as
// fetched.
func (s *PageStore[T]) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.page.Items {
		if s.id(item) == id {
			s.page.Items = append(s.page.Items[:i], s.page.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Replace overwrites the item with the given identity in place.
func (s *PageStore[T]) Replace(id int64, item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.page.Items {
		if s.id(existing) == id {
			s.page.Items[i] = item
			return true
		}
	}
	return false
}

// Get looks up an item by identity in the current page.
func (s *PageStore[T]) Get(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.page.Items {
		if s.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
