package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hashRacecar    = "e00f9ef51a95f6e854862eed28dc0f1a68f154d9f75ddd841ab00de6ede9209b"
	hashEmpty      = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	hashHelloWorld = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
)

func TestAnalyze_Racecar(t *testing.T) {
	p := Analyze("racecar")

	assert.Equal(t, 7, p.Length)
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 4, p.UniqueCharacters)
	assert.Equal(t, 1, p.WordCount)
	assert.Equal(t, hashRacecar, p.ContentHash)
	assert.Equal(t, map[string]int{"r": 2, "a": 2, "c": 2, "e": 1}, p.CharacterFrequency)
}

func TestAnalyze_EmptyAndWhitespace(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n ", "  "} {
		t.Run(strings.ReplaceAll(input, " ", "_"), func(t *testing.T) {
			p := Analyze(input)

			assert.Equal(t, 0, p.Length)
			assert.Equal(t, 0, p.WordCount)
			assert.Equal(t, 0, p.UniqueCharacters)
			assert.True(t, p.IsPalindrome, "empty string is trivially a palindrome")
			require.NotNil(t, p.CharacterFrequency)
			assert.Empty(t, p.CharacterFrequency)
			assert.Equal(t, hashEmpty, p.ContentHash)
		})
	}
}

func TestAnalyze_Palindrome(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"racecar", true},
		{"Racecar", true},
		{"RaceCaR", true},
		{"a", true},
		{"ab", false},
		{"A man a man", false},
		{"Was it a car or a cat I saw", false},
		{"step on no pets", true},
		{"  noon  ", true},
		{"ÅbÅ", true},
		{"Åbå", true},
		{"日本日", true},
		{"日本", false},
		{"!a!", true},
		{"a, a", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.input).IsPalindrome)
		})
	}
}

func TestAnalyze_TrimsBeforeDerivation(t *testing.T) {
	p := Analyze("  hello world \n")

	assert.Equal(t, 11, p.Length)
	assert.Equal(t, 2, p.WordCount)
	assert.Equal(t, hashHelloWorld, p.ContentHash)
	assert.Equal(t, 1, p.CharacterFrequency[" "], "internal whitespace is counted")
}

func TestAnalyze_WordCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"one", 1},
		{"one two", 2},
		{"one   two\tthree\nfour", 4},
		{"  spaced   out  ", 2},
		{"punctuation, counts.as words", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.input).WordCount)
		})
	}
}

func TestAnalyze_CountsCodePoints(t *testing.T) {
	p := Analyze("héllo")

	assert.Equal(t, 5, p.Length, "multi-byte characters count once")
	assert.Equal(t, 4, p.UniqueCharacters)
	assert.Equal(t, 1, p.CharacterFrequency["é"])
	assert.Equal(t, 2, p.CharacterFrequency["l"])
}

func TestAnalyze_CaseSensitiveFrequency(t *testing.T) {
	p := Analyze("Aa")

	assert.Equal(t, 2, p.UniqueCharacters)
	assert.Equal(t, map[string]int{"A": 1, "a": 1}, p.CharacterFrequency)
}

func TestAnalyze_Invariants(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"hello world",
		"  padded value\t",
		"Mississippi",
		"🙂🙃🙂",
		"tab\tseparated\tvalues",
		"ünïcödé strings",
		"\xff\xfe broken utf8",
	}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			p := Analyze(s)

			assert.Equal(t, utf8.RuneCountInString(strings.TrimSpace(s)), p.Length)

			sum := 0
			for _, n := range p.CharacterFrequency {
				sum += n
			}
			assert.Equal(t, p.Length, sum, "frequencies must sum to length")
			assert.Len(t, p.CharacterFrequency, p.UniqueCharacters)
		})
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	for _, s := range []string{"", "racecar", "A man a man", "héllo wörld"} {
		assert.Equal(t, Analyze(s), Analyze(s))
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc", Normalize("  abc\n"))
	assert.Equal(t, "a b", Normalize("a b"))
	assert.Equal(t, "", Normalize(" \t "))
}
