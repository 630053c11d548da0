// Package analysis derives the fixed property set of a submitted string.
//
// Analyze is a pure function: it holds no state and is safe for concurrent use.
//
// NORMALIZATION POLICY:
//
// Historical variants of this service disagreed on how to treat surrounding
// whitespace and casing. The canonical policy used here is:
//   - Leading and trailing whitespace (unicode.IsSpace) is trimmed before any
//     property is derived. The trimmed value is what gets stored.
//   - The content hash is SHA-256 over the UTF-8 bytes of the trimmed value,
//     so identity lookups agree with the stored value.
//   - The palindrome check lower-cases the trimmed value and its code point
//     reversal with full Unicode case mapping, then compares them. Internal
//     spaces and punctuation are significant.
//   - Length, unique characters, and frequencies count code points, not bytes.
//   - Word count is the number of non-empty tokens between whitespace runs.
//
// Changing any of these rules changes stored identities.
package analysis
