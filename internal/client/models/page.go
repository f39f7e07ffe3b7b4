package models

// Page is one fetched page of a server-paginated collection plus its
// metadata. A page is replaced wholesale on every successful fetch; items
// are never merged across pages. Local splices (optimistic create, delete)
// mutate Items without touching the totals, so TotalCount and TotalPages
// may lag the item count until the next fetch. That staleness is part of
// the contract, not an accident.
type Page[T any] struct {
	Items      []T `json:"items"`
	PageNumber int `json:"pageNumber"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// EmptyPage is the state a store starts in before its first fetch.
func EmptyPage[T any]() Page[T] {
	return Page[T]{PageNumber: 1, TotalPages: 1}
}

func (p Page[T]) HasNextPage() bool {
	return p.PageNumber < p.TotalPages
}

func (p Page[T]) HasPreviousPage() bool {
	return p.PageNumber > 1
}

func (p Page[T]) HasMultiplePages() bool {
	return p.TotalPages > 1
}

// Valid reports whether the page metadata decoded from a server response
// is usable: page numbers are positive and the count is non-negative.
func (p Page[T]) Valid() bool {
	return p.PageNumber >= 1 && p.TotalPages >= 1 && p.TotalCount >= 0
}
