package nlquery

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stringvault/internal/analysis"
	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

func TestTranslate_Phrases(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  filter.Set
	}{
		{
			name:  "palindromic",
			query: "find palindromic strings",
			want:  filter.Set{}.WithPalindrome(true),
		},
		{
			name:  "longer than",
			query: "strings longer than 5 characters",
			want:  filter.Set{}.WithMinLength(6),
		},
		{
			name:  "combined",
			query: "single word palindromic strings containing the letter z",
			want:  filter.Set{}.WithWordCount(1).WithPalindrome(true).WithContainsCharacter("z"),
		},
		{
			name:  "case insensitive",
			query: "Show me PALINDROMIC Strings LONGER THAN 10",
			want:  filter.Set{}.WithPalindrome(true).WithMinLength(11),
		},
		{
			name:  "negative bound passes through",
			query: "longer than -3",
			want:  filter.Set{}.WithMinLength(-2),
		},
		{
			name:  "first longer than wins",
			query: "longer than 3 or longer than 10",
			want:  filter.Set{}.WithMinLength(4),
		},
		{
			name:  "letter token captured verbatim",
			query: "strings containing the letter ab",
			want:  filter.Set{}.WithContainsCharacter("ab"),
		},
		{
			name:  "letter token read after first letter word",
			query: "letters containing the letter z",
			want:  filter.Set{}.WithContainsCharacter("s"),
		},
		{
			name:  "letter token is lower-cased with the query",
			query: "Containing The Letter Q",
			want:  filter.Set{}.WithContainsCharacter("q"),
		},
		{
			name:  "malformed number skips only that rule",
			query: "palindromic strings longer than five",
			want:  filter.Set{}.WithPalindrome(true),
		},
		{
			name:  "missing letter skips only that rule",
			query: "single word strings containing the letter",
			want:  filter.Set{}.WithWordCount(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate_Unparsable(t *testing.T) {
	queries := []string{
		"hello",
		"",
		"strings longer than five characters",
		"strings longer than",
		"containing the letter",
		"containing the letter letter x",
		"longer than 5characters",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			_, err := Translate(q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnparsableQuery))

			var ue *UnparsableQueryError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, q, ue.Query)
		})
	}
}

func TestTranslate_Deterministic(t *testing.T) {
	q := "single word palindromic strings longer than 2 containing the letter a"
	first, err := Translate(q)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := Translate(q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTranslate_RoundTripMatchesSatisfyingRecord(t *testing.T) {
	tests := []struct {
		query string
		value string
	}{
		{"palindromic strings", "racecar"},
		{"single word palindromic strings", "level"},
		{"strings longer than 3 characters", "four"},
		{"strings containing the letter z", "pizza"},
		{"single word palindromic strings containing the letter z", "zaz"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			set, err := Translate(tt.query)
			require.NoError(t, err)

			rec := record.New(tt.value, analysis.Analyze(tt.value), time.Unix(0, 0))
			assert.True(t, filter.Matches(rec, set))
		})
	}
}

func TestInterpret(t *testing.T) {
	in, err := Interpret("Palindromic strings")
	require.NoError(t, err)
	assert.Equal(t, "Palindromic strings", in.Original)
	assert.Equal(t, filter.Set{}.WithPalindrome(true), in.ParsedFilters)

	_, err = Interpret("nothing here")
	assert.ErrorIs(t, err, ErrUnparsableQuery)
}

func TestRules_OrderAndIsolation(t *testing.T) {
	rs := Rules()
	require.Len(t, rs, 4)

	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"palindromic", "single-word", "longer-than", "containing-letter"}, names)

	rs[0].Name = "mutated"
	assert.Equal(t, "palindromic", Rules()[0].Name, "Rules returns a copy")
}

func TestRules_ExtractIndependently(t *testing.T) {
	set, ok := extractLongerThan("longer than 7")
	require.True(t, ok)
	assert.Equal(t, 8, *set.MinLength)

	_, ok = extractLongerThan("longer than seven")
	assert.False(t, ok)

	_, ok = extractPalindromic("palindrome")
	assert.False(t, ok, "only the exact phrase triggers")

	set, ok = extractContainingLetter("containing the letter e please")
	require.True(t, ok)
	assert.Equal(t, "e", *set.ContainsCharacter)

	set, ok = extractSingleWord("a single word")
	require.True(t, ok)
	assert.Equal(t, 1, *set.WordCount)
}

func TestSegmentAfter(t *testing.T) {
	assert.Equal(t, " 5 chars", segmentAfter("longer than 5 chars", "longer than"))
	assert.Equal(t, " 3 or ", segmentAfter("longer than 3 or longer than 10", "longer than"))
	assert.Equal(t, "", segmentAfter("nothing", "longer than"))
}
