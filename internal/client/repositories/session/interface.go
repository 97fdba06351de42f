// Package session persists the login session as a string-keyed key/value
// table in the local SQLite database.
package session

import "context"

type Repository interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set inserts or overwrites a key.
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	// Clear removes every key. Used on logout.
	Clear(ctx context.Context) error
}
