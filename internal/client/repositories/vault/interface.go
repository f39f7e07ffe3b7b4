// Package vault stores small opaque values under fixed keys in the local
// database. Values arrive already encrypted; the repository never sees
// plaintext tokens.
package vault

import "context"

// Repository is a key/value store for vault entries.
type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every vault entry.
	Clear(ctx context.Context) error
}
