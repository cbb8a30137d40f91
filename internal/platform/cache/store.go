// Package cache is the process-local TTL cache behind the geocoder, the
// robots.txt checker and the catalog read path.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Store maps string keys to values of one type. Concurrent misses on the
// same key share a single load; failed loads are not cached.
type Store[V any] struct {
	items  *gocache.Cache
	flight singleflight.Group
}

// New returns a store whose entries live for ttl. A non-positive ttl keeps
// entries until they are deleted.
func New[V any](ttl time.Duration) *Store[V] {
	if ttl <= 0 {
		return &Store[V]{items: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Store[V]{items: gocache.New(ttl, 2*ttl)}
}

func (s *Store[V]) Get(key string) (V, bool) {
	if raw, ok := s.items.Get(key); ok {
		v, ok := raw.(V)
		return v, ok
	}
	var zero V
	return zero, false
}

func (s *Store[V]) Put(key string, value V) {
	s.items.SetDefault(key, value)
}

func (s *Store[V]) Delete(keys ...string) {
	for _, key := range keys {
		s.items.Delete(key)
	}
}

func (s *Store[V]) Len() int {
	return s.items.ItemCount()
}

// GetOrLoad returns the cached value for key or runs load once for all
// callers waiting on it. An empty key bypasses the cache.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	raw, err, _ := s.flight.Do(key, func() (any, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Put(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return raw.(V), nil
}
