// Package memstore provides an in-process record.Store.
//
// Records live in a map keyed by ID. Insertion order is tracked by a
// monotonic sequence stamped on every Put. A single RWMutex makes Put and
// Delete atomic and gives ListAll a consistent snapshot.
package memstore

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

// Store is a mutex-guarded in-memory record.Store.
// Thread-safety: safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]entry
	seq     atomic.Int64
}

type entry struct {
	seq int64
	rec record.StringRecord
}

// New creates an empty store.
func New() *Store {
	return &Store{records: make(map[string]entry)}
}

// Get retrieves a single record by ID.
func (s *Store) Get(ctx context.Context, id string) (record.StringRecord, error) {
	if err := ctx.Err(); err != nil {
		return record.StringRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[id]
	if !ok {
		return record.StringRecord{}, record.NewNotFoundError(id)
	}
	return e.rec, nil
}

// Put inserts rec if no record with the same ID exists.
func (s *Store) Put(ctx context.Context, rec record.StringRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return record.NewDuplicateError(rec.ID)
	}
	s.records[rec.ID] = entry{seq: s.seq.Add(1), rec: rec}
	return nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return record.NewNotFoundError(id)
	}
	delete(s.records, id)
	return nil
}

// ListAll returns every record in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]record.StringRecord, error) {
	return s.ListMatching(ctx, filter.Set{})
}

// ListMatching returns the records satisfying set in insertion order,
// evaluated under the read lock.
func (s *Store) ListMatching(ctx context.Context, set filter.Set) ([]record.StringRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	entries := make([]entry, 0, len(s.records))
	for _, e := range s.records {
		if filter.Matches(e.rec, set) {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]record.StringRecord, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close is a no-op; it satisfies record.Store.
func (s *Store) Close() error {
	return nil
}
