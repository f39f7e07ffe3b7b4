package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvolkov/tastebook/internal/client/models"
)

func intPage(pageNumber int, ids ...int64) models.Page[int64] {
	return models.Page[int64]{Items: ids, PageNumber: pageNumber, TotalPages: 3, TotalCount: 25}
}

func newIntStore() *PageStore[int64] {
	return NewPageStore(func(v int64) int64 { return v })
}

func TestPageStoreStartsEmpty(t *testing.T) {
	s := newIntStore()
	page := s.Current()
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPageStoreAppliesLatestTicket(t *testing.T) {
	s := newIntStore()
	ticket := s.begin()
	assert.True(t, s.apply(ticket, intPage(1, 1, 2)))
	assert.Equal(t, []int64{1, 2}, s.Current().Items)
}

func TestPageStoreDiscardsStaleTicket(t *testing.T) {
	s := newIntStore()

	slow := s.begin()
	fast := s.begin()

	// The newer fetch resolves first.
	assert.True(t, s.apply(fast, intPage(2, 11, 12)))

	// The older fetch resolves late and must not clobber the newer page.
	assert.False(t, s.apply(slow, intPage(1, 1, 2)))

	page := s.Current()
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, []int64{11, 12}, page.Items)
}

func TestPageStoreSplicesKeepTotals(t *testing.T) {
	s := newIntStore()
	ticket := s.begin()
	s.apply(ticket, intPage(1, 1, 2, 3))

	s.Append(4)
	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(99))

	page := s.Current()
	assert.Equal(t, []int64{1, 3, 4}, page.Items)
	// Totals deliberately lag local splices until the next fetch.
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPageStoreCurrentIsASnapshot(t *testing.T) {
	s := newIntStore()
	ticket := s.begin()
	s.apply(ticket, intPage(1, 1, 2))

	snapshot := s.Current()
	s.Append(3)
	assert.Equal(t, []int64{1, 2}, snapshot.Items)
}
