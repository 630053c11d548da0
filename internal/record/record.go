// Package record defines the stored string record and the store contract
// every backend implements.
//
// This package contains type definitions only. Backends (store, kvstore,
// memstore, cachestore) and the service import record; record imports
// nothing internal except analysis.
package record

import (
	"context"
	"time"

	"github.com/roach88/stringvault/internal/analysis"
)

// TimestampLayout formats CreatedAt: ISO-8601, UTC, microseconds, Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// StringRecord is an analyzed string as stored. Records are immutable;
// changing one requires delete and recreate.
type StringRecord struct {
	ID         string              `json:"id"`
	Value      string              `json:"value"`
	Properties analysis.Properties `json:"properties"`
	CreatedAt  string              `json:"created_at"`
}

// New builds the record for an already-analyzed value.
// The ID is the identity of props.
func New(value string, props analysis.Properties, createdAt time.Time) StringRecord {
	return StringRecord{
		ID:         analysis.Identity(props),
		Value:      value,
		Properties: props,
		CreatedAt:  FormatTimestamp(createdAt),
	}
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Store is the keyed record store the service depends on.
//
// Implementations must provide:
//   - Put: atomic insert-if-absent, failing with a DuplicateIdentity error
//   - Delete: atomic single-key delete, failing with a NotFound error
//   - ListAll: a consistent snapshot in insertion order
//
// All methods are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (StringRecord, error)
	Put(ctx context.Context, rec StringRecord) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]StringRecord, error)
	Close() error
}
