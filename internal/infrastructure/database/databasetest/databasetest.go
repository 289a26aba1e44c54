// Package databasetest opens migrated throwaway project stores for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dxascend/ascend-core/internal/infrastructure/database"
	_ "github.com/dxascend/ascend-core/migrations" // registers the schema
)

// Open returns a migrated database in a per-test temp directory.
// It is closed automatically when the test finishes.
func Open(t testing.TB) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(t.TempDir(), "ascend-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("databasetest: open: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("databasetest: migrate: %v", err)
	}
	return db
}

// Exec runs setup statements, failing the test on the first error.
func Exec(t testing.TB, db *database.DB, query string, args ...any) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("databasetest: exec %q: %v", query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("databasetest: last insert id: %v", err)
	}
	return id
}
