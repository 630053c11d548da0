package filter

import (
	"strings"

	"github.com/roach88/stringvault/internal/record"
)

// Result is the outcome of a filter pass.
type Result struct {
	Data           []record.StringRecord `json:"data"`
	Count          int                   `json:"count"`
	FiltersApplied Set                   `json:"filters_applied"`
}

// Matches reports whether rec satisfies every present predicate in s.
func Matches(rec record.StringRecord, s Set) bool {
	p := rec.Properties

	if s.IsPalindrome != nil && p.IsPalindrome != *s.IsPalindrome {
		return false
	}
	if s.MinLength != nil && p.Length < *s.MinLength {
		return false
	}
	if s.MaxLength != nil && p.Length > *s.MaxLength {
		return false
	}
	if s.WordCount != nil && p.WordCount != *s.WordCount {
		return false
	}
	// Substring search over valid UTF-8 never splits a code point.
	if s.ContainsCharacter != nil && !strings.Contains(rec.Value, *s.ContainsCharacter) {
		return false
	}
	return true
}

// FilterAll returns the records matching s in their original relative order.
// Data is never nil; an empty slice means nothing matched.
func FilterAll(records []record.StringRecord, s Set) Result {
	matched := make([]record.StringRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, s) {
			matched = append(matched, rec)
		}
	}
	return NewResult(matched, s)
}

// NewResult wraps records that already satisfy s.
// Used by backends that evaluate s themselves.
func NewResult(records []record.StringRecord, s Set) Result {
	if records == nil {
		records = []record.StringRecord{}
	}
	return Result{
		Data:           records,
		Count:          len(records),
		FiltersApplied: s,
	}
}
