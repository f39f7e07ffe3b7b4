// Package favorites persists the set of favorite cookbook ids across runs.
package favorites

import "context"

type Repository interface {
	// List returns the stored favorite ids in ascending order.
	List(ctx context.Context) ([]int64, error)

	// Add marks a cookbook as favorite. Adding twice is a no-op.
	Add(ctx context.Context, cookbookID int64) error

	// Remove unmarks a cookbook. Removing an absent id is not an error.
	Remove(ctx context.Context, cookbookID int64) error

	// Clear removes every favorite.
	Clear(ctx context.Context) error
}
