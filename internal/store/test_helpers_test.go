package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/stringvault/internal/record"
)

// createTestStore creates a new file-backed store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// openRecordStore adapts createTestStore to testutil.StoreFactory.
func openRecordStore(t *testing.T) record.Store {
	return createTestStore(t)
}
