package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get and Delete when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueRepository defines persistence behavior for opaque values stored
// under string keys. Implementations must be safe for concurrent use.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
