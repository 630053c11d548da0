package filter

import (
	"fmt"
	"unicode/utf8"
)

// ValidationError reports a request-supplied predicate that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks a Set built from request parameters.
//
// Rules:
//  1. min_length, max_length and word_count are non-negative
//  2. min_length <= max_length when both are present
//  3. contains_character is exactly one character
//
// Sets produced by the natural-language translator are not validated;
// their captured tokens pass through as-is.
func (s Set) Validate() error {
	if s.MinLength != nil && *s.MinLength < 0 {
		return &ValidationError{Field: "min_length", Message: "must be non-negative"}
	}
	if s.MaxLength != nil && *s.MaxLength < 0 {
		return &ValidationError{Field: "max_length", Message: "must be non-negative"}
	}
	if s.WordCount != nil && *s.WordCount < 0 {
		return &ValidationError{Field: "word_count", Message: "must be non-negative"}
	}
	if s.MinLength != nil && s.MaxLength != nil && *s.MinLength > *s.MaxLength {
		return &ValidationError{
			Field:   "min_length",
			Message: fmt.Sprintf("%d exceeds max_length %d", *s.MinLength, *s.MaxLength),
		}
	}
	if s.ContainsCharacter != nil && utf8.RuneCountInString(*s.ContainsCharacter) != 1 {
		return &ValidationError{Field: "contains_character", Message: "must be a single character"}
	}
	return nil
}
