// Package nlquery translates free-text queries into filter predicate sets.
//
// The translator is rule based. Each rule looks for one fixed phrase in the
// lower-cased query and may contribute predicates:
//
//	"palindromic"            is_palindrome = true
//	"single word"            word_count = 1
//	"longer than N"          min_length = N+1
//	"containing the letter"  contains_character = token after "letter"
//
// Rules are independent and cumulative. A rule whose phrase is present but
// whose argument cannot be extracted contributes nothing; the remaining rules
// still run. A query to which no rule contributes fails with
// UnparsableQueryError.
//
// Translate is pure and safe for concurrent use.
package nlquery
