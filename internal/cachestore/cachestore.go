// Package cachestore wraps a record.Store with a read-through LRU cache.
//
// Records are immutable, so a cached entry is valid until its ID is deleted.
// Get consults the cache first; Put populates it; Delete invalidates it.
// Listing always goes to the wrapped store.
package cachestore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

// DefaultSize is used when New is given a non-positive size.
const DefaultSize = 1024

type matcher interface {
	ListMatching(ctx context.Context, set filter.Set) ([]record.StringRecord, error)
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Len    int   `json:"len"`
}

// Store is a caching record.Store.
type Store struct {
	inner record.Store
	cache *lru.Cache[string, record.StringRecord]

	// mu orders cache population against deletion so a miss that races a
	// Delete can never re-insert the deleted record.
	mu sync.Mutex

	hits   atomic.Int64
	misses atomic.Int64
}

// New wraps inner with an LRU of the given size.
func New(inner record.Store, size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, record.StringRecord](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Store{inner: inner, cache: cache}, nil
}

// Get returns the cached record or reads through to the wrapped store.
func (s *Store) Get(ctx context.Context, id string) (record.StringRecord, error) {
	if rec, ok := s.cache.Get(id); ok {
		s.hits.Add(1)
		return rec, nil
	}
	s.misses.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.inner.Get(ctx, id)
	if err != nil {
		return record.StringRecord{}, err
	}
	s.cache.Add(id, rec)
	return rec, nil
}

// Put stores rec in the wrapped store and caches it on success.
func (s *Store) Put(ctx context.Context, rec record.StringRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inner.Put(ctx, rec); err != nil {
		return err
	}
	s.cache.Add(rec.ID, rec)
	return nil
}

// Delete removes id from the wrapped store and the cache.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(id)
	return s.inner.Delete(ctx, id)
}

// ListAll delegates to the wrapped store.
func (s *Store) ListAll(ctx context.Context) ([]record.StringRecord, error) {
	return s.inner.ListAll(ctx)
}

// ListMatching pushes set down when the wrapped store supports it and
// filters ListAll otherwise.
func (s *Store) ListMatching(ctx context.Context, set filter.Set) ([]record.StringRecord, error) {
	if m, ok := s.inner.(matcher); ok {
		return m.ListMatching(ctx, set)
	}
	all, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.FilterAll(all, set).Data, nil
}

// Stats returns hit and miss counters and the current cache length.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Len:    s.cache.Len(),
	}
}

// Close purges the cache and closes the wrapped store.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.inner.Close()
}
