package analysis

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash returns the lowercase hex SHA-256 digest of value's UTF-8 bytes.
// Callers pass the already-normalized value.
func ContentHash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Identity returns the storage key for a property record.
// Records are content-addressed: equal trimmed values always share a key,
// which is what backs the duplicate check on create.
func Identity(p Properties) string {
	return p.ContentHash
}

// IdentityOf returns the storage key text would be stored under.
// Equivalent to Identity(Analyze(text)) without computing the other properties.
func IdentityOf(text string) string {
	return ContentHash(Normalize(text))
}
