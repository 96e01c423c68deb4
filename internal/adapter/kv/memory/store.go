package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"

	"reminders/internal/core/domain"
	"reminders/internal/core/port"
)

// Store keeps values in process memory. It implements the same contract as
// the Redis store and exists for tests and single-process local runs; data
// does not survive a restart.
type Store struct {
	cache *cache.Cache
}

var _ port.KeyValueStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := s.cache.Get(key)
	if !ok {
		return nil, domain.ErrNotFound
	}

	stored := v.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)

	return out, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.cache.Set(key, stored, cache.NoExpiration)

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cache.Delete(key)
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := make([]string, 0)
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Len() int {
	return s.cache.ItemCount()
}

func (s *Store) Flush() {
	s.cache.Flush()
}
