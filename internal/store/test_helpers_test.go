package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/seek/internal/item"
	"github.com/roach88/seek/internal/testutil"
)

// createTestStore creates a new store in a temp directory for testing.
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

// createSeededStore imports testutil.Backpack as loose items and
// testutil.Chests as containers.
func createSeededStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t)
	if err := s.Import(context.Background(), testutil.Backpack(), testutil.Chests()); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	return s
}

// allRecords returns the seeded items in insertion order.
func allRecords() []*item.Record {
	out := testutil.Backpack()
	for _, c := range testutil.Chests() {
		out = append(out, c.Contents...)
	}
	return out
}
