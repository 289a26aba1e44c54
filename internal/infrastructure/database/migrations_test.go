package database

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"
)

// testMigrations is a two-step schema used to exercise ordering and rollback.
var testMigrations = fstest.MapFS{
	"sql/20260101_000000_create_widgets.up.sql":   {Data: []byte("CREATE TABLE test_widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);")},
	"sql/20260101_000000_create_widgets.down.sql": {Data: []byte("DROP TABLE test_widgets;")},
	"sql/20260102_000000_add_labels.up.sql":       {Data: []byte("CREATE TABLE test_labels (id INTEGER PRIMARY KEY, widget_id INTEGER REFERENCES test_widgets(id));")},
	"sql/20260102_000000_add_labels.down.sql":     {Data: []byte("DROP TABLE test_labels;")},
	"sql/README.md":                               {Data: []byte("ignored")},
}

// useMigrations swaps the package-level migration source for the test duration.
func useMigrations(t *testing.T, fsys fs.FS, dir string) {
	t.Helper()
	origFS, origDir := MigrationsFS, MigrationsDir
	MigrationsFS, MigrationsDir = fsys, dir
	t.Cleanup(func() {
		MigrationsFS, MigrationsDir = origFS, origDir
	})
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return count == 1
}

func TestMigrate(t *testing.T) {
	useMigrations(t, testMigrations, "sql")
	db := openTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	for _, table := range []string{"test_widgets", "test_labels"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s not created", table)
		}
	}

	applied, pending, err := db.GetMigrationStatus(ctx)
	if err != nil {
		t.Fatalf("GetMigrationStatus() error = %v", err)
	}
	if len(applied) != 2 {
		t.Errorf("expected 2 applied migrations, got %d", len(applied))
	}
	if len(pending) != 0 {
		t.Errorf("expected 0 pending migrations, got %d", len(pending))
	}
	if applied[0].Version != "20260101_000000" || applied[1].Version != "20260102_000000" {
		t.Errorf("applied order = %v", applied)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	useMigrations(t, testMigrations, "sql")
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := db.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}

	if tableExists(t, db, "test_labels") {
		t.Error("table test_labels should have been dropped")
	}
	if !tableExists(t, db, "test_widgets") {
		t.Error("table test_widgets should survive a single rollback")
	}

	applied, pending, err := db.GetMigrationStatus(ctx)
	if err != nil {
		t.Fatalf("GetMigrationStatus() error = %v", err)
	}
	if len(applied) != 1 || len(pending) != 1 {
		t.Errorf("applied=%d pending=%d, want 1 and 1", len(applied), len(pending))
	}
}

func TestMigrate_FailureRollsBackThatMigration(t *testing.T) {
	broken := fstest.MapFS{
		"20260101_000000_good.up.sql": {Data: []byte("CREATE TABLE good (id INTEGER PRIMARY KEY);")},
		"20260102_000000_bad.up.sql":  {Data: []byte("CREATE TABLE half (id INTEGER); NOT VALID SQL;")},
	}
	useMigrations(t, broken, ".")
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err == nil {
		t.Fatal("Migrate() should fail on invalid SQL")
	}
	if !tableExists(t, db, "good") {
		t.Error("earlier migration should remain committed")
	}

	applied, _, err := db.GetMigrationStatus(ctx)
	if err != nil {
		t.Fatalf("GetMigrationStatus() error = %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("expected 1 applied migration, got %d", len(applied))
	}
}

func TestMigrateNoMigrations(t *testing.T) {
	useMigrations(t, nil, ".")
	db := openTestDB(t)

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() with no migrations error = %v", err)
	}
}

func TestParseMigrationFile(t *testing.T) {
	tests := []struct {
		filename string
		want     migrationFile
		wantOk   bool
	}{
		{"20260101_000000_initial_schema.up.sql", migrationFile{"20260101_000000", "initial_schema", true}, true},
		{"20260101_000000_initial_schema.down.sql", migrationFile{"20260101_000000", "initial_schema", false}, true},
		{"20260102_093000_add_screen_index.up.sql", migrationFile{"20260102_093000", "add_screen_index", true}, true},
		{"20260103_000000.up.sql", migrationFile{"20260103_000000", "20260103_000000", true}, true},
		{"readme.txt", migrationFile{}, false},
		{"20260101_000000_initial_schema.sql", migrationFile{}, false},
		{"invalid.up.sql", migrationFile{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := parseMigrationFile(tt.filename)
			if ok != tt.wantOk {
				t.Fatalf("parseMigrationFile(%q) ok = %v, want %v", tt.filename, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("parseMigrationFile(%q) = %+v, want %+v", tt.filename, got, tt.want)
			}
		})
	}
}
