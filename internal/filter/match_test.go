package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stringvault/internal/analysis"
	"github.com/roach88/stringvault/internal/record"
)

var testTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newRecord(value string) record.StringRecord {
	return record.New(analysis.Normalize(value), analysis.Analyze(value), testTime)
}

func values(records []record.StringRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Value
	}
	return out
}

func TestMatches_EmptySetMatchesEverything(t *testing.T) {
	for _, v := range []string{"", "abc", "racecar", "hello world"} {
		assert.True(t, Matches(newRecord(v), Set{}))
	}
}

func TestMatches_Predicates(t *testing.T) {
	racecar := newRecord("racecar")    // length 7, palindrome, 1 word
	hello := newRecord("hello world") // length 11, not palindrome, 2 words

	tests := []struct {
		name string
		set  Set
		rec  record.StringRecord
		want bool
	}{
		{"palindrome true matches", Set{}.WithPalindrome(true), racecar, true},
		{"palindrome true rejects", Set{}.WithPalindrome(true), hello, false},
		{"palindrome false matches", Set{}.WithPalindrome(false), hello, true},
		{"min length inclusive", Set{}.WithMinLength(7), racecar, true},
		{"min length rejects", Set{}.WithMinLength(8), racecar, false},
		{"max length inclusive", Set{}.WithMaxLength(7), racecar, true},
		{"max length rejects", Set{}.WithMaxLength(6), racecar, false},
		{"word count equal", Set{}.WithWordCount(2), hello, true},
		{"word count differs", Set{}.WithWordCount(1), hello, false},
		{"contains character", Set{}.WithContainsCharacter("w"), hello, true},
		{"contains character absent", Set{}.WithContainsCharacter("z"), hello, false},
		{"contains is case sensitive", Set{}.WithContainsCharacter("H"), hello, false},
		{"contains space", Set{}.WithContainsCharacter(" "), hello, true},
		{"conjunction all hold", Set{}.WithPalindrome(true).WithWordCount(1).WithContainsCharacter("e"), racecar, true},
		{"conjunction one fails", Set{}.WithPalindrome(true).WithWordCount(2), racecar, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.rec, tt.set))
		})
	}
}

func TestMatches_ContainsMultiByteCharacter(t *testing.T) {
	rec := newRecord("crème brûlée")

	assert.True(t, Matches(rec, Set{}.WithContainsCharacter("û")))
	assert.True(t, Matches(rec, Set{}.WithContainsCharacter("è")))
	assert.False(t, Matches(rec, Set{}.WithContainsCharacter("É")))
}

func TestFilterAll_PreservesOrder(t *testing.T) {
	recA := newRecord("abc")     // length 3
	recB := newRecord("abcdefg") // length 7

	result := FilterAll([]record.StringRecord{recA, recB}, Set{}.WithMinLength(5))

	require.Len(t, result.Data, 1)
	assert.Equal(t, recB, result.Data[0])
	assert.Equal(t, 1, result.Count)
	require.NotNil(t, result.FiltersApplied.MinLength)
	assert.Equal(t, 5, *result.FiltersApplied.MinLength)
}

func TestFilterAll_RelativeOrderOfManyMatches(t *testing.T) {
	records := []record.StringRecord{
		newRecord("level"),
		newRecord("not one"),
		newRecord("noon"),
		newRecord("kayak"),
		newRecord("plain"),
	}

	result := FilterAll(records, Set{}.WithPalindrome(true))

	assert.Equal(t, []string{"level", "noon", "kayak"}, values(result.Data))
	assert.Equal(t, 3, result.Count)
}

func TestFilterAll_NoMatchIsEmptyNotNil(t *testing.T) {
	result := FilterAll([]record.StringRecord{newRecord("abc")}, Set{}.WithMinLength(100))

	require.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.Count)

	result = FilterAll(nil, Set{})
	require.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}
