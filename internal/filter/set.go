// Package filter provides the structured filter predicate set and its
// evaluation over stored records.
//
// A Set is a conjunction of optional predicates. A nil field imposes no
// constraint on that dimension; an empty Set matches every record.
//
// Evaluation is pure and stateless. Backends that can push a Set down into
// their own query language (see querysql) must produce exactly the records
// FilterAll would.
package filter

import (
	"fmt"
	"strings"
)

// Set is a filter predicate set. JSON names match the service's query
// parameter names.
type Set struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// IsEmpty returns true if no predicate is set.
func (s Set) IsEmpty() bool {
	return s.IsPalindrome == nil &&
		s.MinLength == nil &&
		s.MaxLength == nil &&
		s.WordCount == nil &&
		s.ContainsCharacter == nil
}

// WithPalindrome returns a copy of s constrained to IsPalindrome == v.
func (s Set) WithPalindrome(v bool) Set {
	s.IsPalindrome = &v
	return s
}

// WithMinLength returns a copy of s constrained to Length >= n.
func (s Set) WithMinLength(n int) Set {
	s.MinLength = &n
	return s
}

// WithMaxLength returns a copy of s constrained to Length <= n.
func (s Set) WithMaxLength(n int) Set {
	s.MaxLength = &n
	return s
}

// WithWordCount returns a copy of s constrained to WordCount == n.
func (s Set) WithWordCount(n int) Set {
	s.WordCount = &n
	return s
}

// WithContainsCharacter returns a copy of s constrained to values containing c.
func (s Set) WithContainsCharacter(c string) Set {
	s.ContainsCharacter = &c
	return s
}

// Merge returns s with every predicate present in other applied on top.
// Predicates absent from other are left unchanged.
func (s Set) Merge(other Set) Set {
	if other.IsPalindrome != nil {
		s = s.WithPalindrome(*other.IsPalindrome)
	}
	if other.MinLength != nil {
		s = s.WithMinLength(*other.MinLength)
	}
	if other.MaxLength != nil {
		s = s.WithMaxLength(*other.MaxLength)
	}
	if other.WordCount != nil {
		s = s.WithWordCount(*other.WordCount)
	}
	if other.ContainsCharacter != nil {
		s = s.WithContainsCharacter(*other.ContainsCharacter)
	}
	return s
}

// String renders the present predicates in a fixed order, e.g.
// "is_palindrome=true min_length=6". An empty Set renders as "none".
func (s Set) String() string {
	var parts []string
	if s.IsPalindrome != nil {
		parts = append(parts, fmt.Sprintf("is_palindrome=%t", *s.IsPalindrome))
	}
	if s.MinLength != nil {
		parts = append(parts, fmt.Sprintf("min_length=%d", *s.MinLength))
	}
	if s.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("max_length=%d", *s.MaxLength))
	}
	if s.WordCount != nil {
		parts = append(parts, fmt.Sprintf("word_count=%d", *s.WordCount))
	}
	if s.ContainsCharacter != nil {
		parts = append(parts, fmt.Sprintf("contains_character=%q", *s.ContainsCharacter))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
