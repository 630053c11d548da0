// Package store provides SQLite-backed durable storage for analyzed strings.
//
// The store implements record.Store with:
//   - strings: one row per analyzed string, keyed by content hash
//
// # Critical Patterns
//
// Content-Addressed Identity
//   - id is the SHA-256 content hash computed by the analysis package
//   - UNIQUE(id) plus ON CONFLICT(id) DO NOTHING gives atomic insert-if-absent
//
// Insertion Order
//   - seq INTEGER PRIMARY KEY AUTOINCREMENT records insertion order
//   - All listing queries MUST include: ORDER BY seq ASC
//
// Filter Pushdown
//   - length, is_palindrome and word_count are stored as indexed columns
//   - ListMatching compiles a filter.Set via querysql instead of scanning
//   - properties keeps the full property record as JSON text
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single connection: every statement sees a consistent snapshot
package store
