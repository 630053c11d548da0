package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

// StoreFactory opens a fresh, empty store for one subtest.
// The factory registers its own cleanup.
type StoreFactory func(t *testing.T) record.Store

// matchingStore is implemented by backends that evaluate filters themselves.
type matchingStore interface {
	ListMatching(ctx context.Context, set filter.Set) ([]record.StringRecord, error)
}

// ContractFilters is the filter corpus used to compare pushdown against
// in-memory filtering.
var ContractFilters = []filter.Set{
	{},
	filter.Set{}.WithPalindrome(true),
	filter.Set{}.WithPalindrome(false),
	filter.Set{}.WithMinLength(5),
	filter.Set{}.WithMaxLength(4),
	filter.Set{}.WithMinLength(3).WithMaxLength(5),
	filter.Set{}.WithWordCount(1),
	filter.Set{}.WithWordCount(8),
	filter.Set{}.WithContainsCharacter("z"),
	filter.Set{}.WithContainsCharacter("é"),
	filter.Set{}.WithContainsCharacter("Z"),
	filter.Set{}.WithContainsCharacter(""),
	filter.Set{}.WithPalindrome(true).WithWordCount(1).WithContainsCharacter("z"),
	filter.Set{}.WithMinLength(100),
}

// RunStoreContract runs the behavior every record.Store must share.
func RunStoreContract(t *testing.T, open StoreFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutThenGet", func(t *testing.T) {
		s := open(t)
		rec := NewRecords("racecar")[0]

		require.NoError(t, s.Put(ctx, rec))

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("RoundTripsUnicodeProperties", func(t *testing.T) {
		s := open(t)
		rec := NewRecords("straße <été> & co")[0]

		require.NoError(t, s.Put(ctx, rec))

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.Value, got.Value)
		assert.Equal(t, rec.Properties.CharacterFrequency, got.Properties.CharacterFrequency)
		assert.Equal(t, rec.CreatedAt, got.CreatedAt)
	})

	t.Run("EmptyValueRoundTrips", func(t *testing.T) {
		s := open(t)
		rec := NewRecords("")[0]

		require.NoError(t, s.Put(ctx, rec))

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "", got.Value)
		assert.NotNil(t, got.Properties.CharacterFrequency)
		assert.Empty(t, got.Properties.CharacterFrequency)
	})

	t.Run("PutDuplicateFails", func(t *testing.T) {
		s := open(t)
		clock := NewDeterministicClock()
		first := NewRecord(clock, "level")
		second := NewRecord(clock, "level")
		require.Equal(t, first.ID, second.ID)
		require.NotEqual(t, first.CreatedAt, second.CreatedAt)

		require.NoError(t, s.Put(ctx, first))

		err := s.Put(ctx, second)
		require.Error(t, err)
		assert.True(t, record.IsDuplicate(err), "got %v", err)

		got, err := s.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.CreatedAt, got.CreatedAt, "original record is kept")
	})

	t.Run("GetMissingIsNotFound", func(t *testing.T) {
		s := open(t)

		_, err := s.Get(ctx, "0000")
		require.Error(t, err)
		assert.True(t, record.IsNotFound(err), "got %v", err)
	})

	t.Run("DeleteRemoves", func(t *testing.T) {
		s := open(t)
		rec := NewRecords("noon")[0]
		require.NoError(t, s.Put(ctx, rec))

		require.NoError(t, s.Delete(ctx, rec.ID))

		_, err := s.Get(ctx, rec.ID)
		assert.True(t, record.IsNotFound(err), "got %v", err)

		err = s.Delete(ctx, rec.ID)
		assert.True(t, record.IsNotFound(err), "second delete: got %v", err)
	})

	t.Run("DeleteMissingIsNotFound", func(t *testing.T) {
		s := open(t)

		err := s.Delete(ctx, "missing")
		require.Error(t, err)
		assert.True(t, record.IsNotFound(err), "got %v", err)
	})

	t.Run("ListAllEmpty", func(t *testing.T) {
		s := open(t)

		recs, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("ListAllInsertionOrder", func(t *testing.T) {
		s := open(t)
		recs := NewRecords("zaz", "apple", "mango", "kiwi")
		for _, r := range recs {
			require.NoError(t, s.Put(ctx, r))
		}

		// Remove and re-add: the record moves to the end.
		require.NoError(t, s.Delete(ctx, recs[1].ID))
		require.NoError(t, s.Put(ctx, recs[1]))

		got, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"zaz", "mango", "kiwi", "apple"}, values(got))
	})

	t.Run("ConcurrentPutSameIdentity", func(t *testing.T) {
		s := open(t)
		rec := NewRecords("racecar")[0]

		const workers = 16
		var wg sync.WaitGroup
		var ok, dup atomic.Int32
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				err := s.Put(ctx, rec)
				switch {
				case err == nil:
					ok.Add(1)
				case record.IsDuplicate(err):
					dup.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(workers-1), dup.Load())

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("ConcurrentPutDistinct", func(t *testing.T) {
		s := open(t)
		recs := NewRecords(SampleValues...)

		var wg sync.WaitGroup
		wg.Add(len(recs))
		for _, r := range recs {
			go func(r record.StringRecord) {
				defer wg.Done()
				assert.NoError(t, s.Put(ctx, r))
			}(r)
		}
		wg.Wait()

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, values(recs), values(all))
	})

	if _, ok := open(t).(matchingStore); !ok {
		return
	}

	t.Run("ListMatchingEqualsFilterAll", func(t *testing.T) {
		s := open(t)
		for _, r := range NewRecords(SampleValues...) {
			require.NoError(t, s.Put(ctx, r))
		}
		all, err := s.ListAll(ctx)
		require.NoError(t, err)

		m := s.(matchingStore)
		for _, set := range ContractFilters {
			t.Run(set.String(), func(t *testing.T) {
				got, err := m.ListMatching(ctx, set)
				require.NoError(t, err)
				assert.NotNil(t, got)
				assert.Equal(t, values(filter.FilterAll(all, set).Data), values(got))
			})
		}
	})
}

func values(recs []record.StringRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Value
	}
	return out
}
