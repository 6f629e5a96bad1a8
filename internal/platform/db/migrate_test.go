package db

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestMigrationNamesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_second.sql": {Data: []byte("SELECT 2")},
		"m/0001_first.sql":  {Data: []byte("SELECT 1")},
		"m/README.md":       {Data: []byte("docs")},
		"m/nested/x.sql":    {Data: []byte("SELECT 3")},
	}

	names, err := migrationNames(fsys, "m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "0001_first.sql" || names[1] != "0002_second.sql" {
		t.Fatalf("unexpected migration order: %v", names)
	}
}

func TestEmbeddedSchemaDefinesCoreTables(t *testing.T) {
	names, err := migrationNames(migrationFiles, "migrations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("expected embedded migrations")
	}

	raw, err := migrationFiles.ReadFile("migrations/" + names[0])
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	schema := string(raw)
	for _, table := range []string{"departments", "employees", "accounts", "leave_requests", "attendance", "performance_reviews", "audit_events"} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Fatalf("expected table %s in schema", table)
		}
	}
	if !strings.Contains(schema, "UNIQUE (employee_id, date)") {
		t.Fatal("expected attendance uniqueness on (employee_id, date)")
	}
}
