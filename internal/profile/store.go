package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wichananm65/profile-registry/internal/domain/repository"
)

// Store is the ordered collection of profiles mirrored to a single key of a
// key-value repository. Every mutation rewrites the whole collection, and
// the in-memory order only changes after that write succeeds.
type Store struct {
	mu       sync.RWMutex
	kv       repository.KeyValueRepository
	key      string
	profiles []Profile
}

func NewStore(kv repository.KeyValueRepository, key string) *Store {
	return &Store{
		kv:       kv,
		key:      key,
		profiles: []Profile{},
	}
}

// Load replaces the in-memory collection with the persisted one. A missing,
// unreadable or malformed value yields an empty collection.
func (s *Store) Load(ctx context.Context) []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = s.read(ctx)
	return clone(s.profiles)
}

func (s *Store) read(ctx context.Context) []Profile {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			slog.Warn("profile storage unreadable, starting empty", "key", s.key, "error", err)
		}
		return []Profile{}
	}

	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		slog.Warn("profile storage malformed, starting empty", "key", s.key, "error", err)
		return []Profile{}
	}
	if profiles == nil {
		return []Profile{}
	}
	return profiles
}

// List returns a copy of the collection in storage order.
func (s *Store) List() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.profiles)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// At returns the profile at a storage position.
func (s *Store) At(position int) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if position < 0 || position >= len(s.profiles) {
		return Profile{}, false
	}
	return s.profiles[position], true
}

// Add appends a profile and persists the collection.
func (s *Store) Add(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Profile, 0, len(s.profiles)+1)
	next = append(next, s.profiles...)
	next = append(next, p)
	return s.commit(ctx, next)
}

// Update replaces every profile whose email equals email and persists the
// collection. It reports how many profiles were replaced; zero is not an
// error.
func (s *Store) Update(ctx context.Context, email string, p Profile) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.profiles)
	replaced := 0
	for i := range next {
		if next[i].Email == email {
			next[i] = p
			replaced++
		}
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return replaced, nil
}

// DeleteAt removes the profile at a storage position and persists the
// collection. An out-of-range position is a no-op reporting false.
func (s *Store) DeleteAt(ctx context.Context, position int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.profiles) {
		return false, nil
	}

	next := make([]Profile, 0, len(s.profiles)-1)
	next = append(next, s.profiles[:position]...)
	next = append(next, s.profiles[position+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context, next []Profile) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist profiles: %w", err)
	}
	s.profiles = next
	return nil
}

func clone(profiles []Profile) []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}
