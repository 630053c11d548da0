package nlquery

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/stringvault/internal/filter"
)

// Interpretation echoes how a query was understood.
type Interpretation struct {
	Original      string     `json:"original"`
	ParsedFilters filter.Set `json:"parsed_filters"`
}

// Rule is one phrase pattern of the translator.
type Rule struct {
	// Name identifies the rule in listings.
	Name string

	// Phrase is the trigger looked for in the lower-cased query.
	Phrase string

	// Effect describes the predicate the rule contributes.
	Effect string

	// Extract returns the rule's contribution for a lower-cased query.
	// ok is false when the phrase is absent or its argument cannot be read.
	Extract func(query string) (contribution filter.Set, ok bool)
}

// rules is evaluated in order; later contributions override earlier ones
// for the same field.
var rules = []Rule{
	{Name: "palindromic", Phrase: "palindromic", Effect: "is_palindrome=true", Extract: extractPalindromic},
	{Name: "single-word", Phrase: "single word", Effect: "word_count=1", Extract: extractSingleWord},
	{Name: "longer-than", Phrase: "longer than", Effect: "min_length=N+1", Extract: extractLongerThan},
	{Name: "containing-letter", Phrase: "containing the letter", Effect: "contains_character=<token after \"letter\">", Extract: extractContainingLetter},
}

// Rules returns the translator's rule set in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Translate converts a free-text query into a filter set.
// Matching is case-insensitive. Returns *UnparsableQueryError when no rule
// contributes a predicate.
func Translate(query string) (filter.Set, error) {
	q := cases.Lower(language.Und).String(query)

	var set filter.Set
	contributed := false
	for _, r := range rules {
		part, ok := r.Extract(q)
		if !ok {
			continue
		}
		set = set.Merge(part)
		contributed = true
	}

	if !contributed {
		return filter.Set{}, &UnparsableQueryError{Query: query}
	}
	return set, nil
}

// Interpret translates query and wraps the result with the original text.
func Interpret(query string) (Interpretation, error) {
	set, err := Translate(query)
	if err != nil {
		return Interpretation{}, err
	}
	return Interpretation{Original: query, ParsedFilters: set}, nil
}

func extractPalindromic(q string) (filter.Set, bool) {
	if !strings.Contains(q, "palindromic") {
		return filter.Set{}, false
	}
	return filter.Set{}.WithPalindrome(true), true
}

func extractSingleWord(q string) (filter.Set, bool) {
	if !strings.Contains(q, "single word") {
		return filter.Set{}, false
	}
	return filter.Set{}.WithWordCount(1), true
}

// extractLongerThan reads "longer than N" as a strict bound: length >= N+1.
func extractLongerThan(q string) (filter.Set, bool) {
	if !strings.Contains(q, "longer than") {
		return filter.Set{}, false
	}
	token, ok := firstToken(segmentAfter(q, "longer than"))
	if !ok {
		return filter.Set{}, false
	}
	n, err := strconv.Atoi(token)
	if err != nil || n == math.MaxInt {
		return filter.Set{}, false
	}
	return filter.Set{}.WithMinLength(n + 1), true
}

// extractContainingLetter captures the token after the first "letter" verbatim.
// The token is not checked to be a single character.
func extractContainingLetter(q string) (filter.Set, bool) {
	if !strings.Contains(q, "containing the letter") {
		return filter.Set{}, false
	}
	token, ok := firstToken(segmentAfter(q, "letter"))
	if !ok {
		return filter.Set{}, false
	}
	return filter.Set{}.WithContainsCharacter(token), true
}

// segmentAfter returns the text between the first occurrence of sep and the
// next one (or the end of q).
func segmentAfter(q, sep string) string {
	_, rest, found := strings.Cut(q, sep)
	if !found {
		return ""
	}
	if i := strings.Index(rest, sep); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
