package inmemory

import (
	"context"
	"sync"

	"github.com/wichananm65/profile-registry/internal/domain/repository"
)

// KeyValueRepository is an in-memory implementation of KeyValueRepository.
type KeyValueRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

var _ repository.KeyValueRepository = (*KeyValueRepository)(nil)

func NewKeyValueRepository() *KeyValueRepository {
	return &KeyValueRepository{
		store: make(map[string][]byte),
	}
}

func (r *KeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.store[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (r *KeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	r.store[key] = copied
	return nil
}

func (r *KeyValueRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[key]; !ok {
		return repository.ErrKeyNotFound
	}
	delete(r.store, key)
	return nil
}

// Len returns the number of stored keys.
func (r *KeyValueRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
