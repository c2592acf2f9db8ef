package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when the key has no value
var ErrNotFound = errors.New("storage: key not found")

// Collection keys of the persisted layout
const (
	KeyRecipes     = "recipes"
	KeyCategories  = "categories"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)

// Store is a persistent key-value namespace addressed by string keys.
// Implementations must return ErrNotFound from Get for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
