package analysis

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Properties is the derived property record of a string.
// JSON field names match the public wire format of the service.
type Properties struct {
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	ContentHash        string         `json:"sha256_hash"`
	CharacterFrequency map[string]int `json:"character_frequency_map"`
}

// Normalize applies the trim policy. The result is the value that is analyzed,
// hashed, and stored.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// Analyze derives the property record of text under the canonical policy.
// It never fails. Invalid UTF-8 bytes are counted as U+FFFD.
//
// The empty string (and any whitespace-only input) yields zero counts, an
// empty frequency map, and IsPalindrome=true.
func Analyze(text string) Properties {
	value := Normalize(text)
	runes := []rune(value)

	freq := make(map[string]int, len(runes))
	for _, r := range runes {
		freq[string(r)]++
	}

	return Properties{
		Length:             len(runes),
		IsPalindrome:       isPalindrome(runes),
		UniqueCharacters:   len(freq),
		WordCount:          len(strings.Fields(value)),
		ContentHash:        ContentHash(value),
		CharacterFrequency: freq,
	}
}

// isPalindrome compares the lower-cased value with its lower-cased reversal.
func isPalindrome(runes []rune) bool {
	if len(runes) == 0 {
		return true
	}
	reversed := make([]rune, len(runes))
	for i, r := range runes {
		reversed[len(runes)-1-i] = r
	}
	return foldLower(string(runes)) == foldLower(string(reversed))
}

// foldLower applies full Unicode lower-case mapping.
// A Caser keeps state between calls, so one is built per call.
func foldLower(s string) string {
	return cases.Lower(language.Und).String(s)
}
