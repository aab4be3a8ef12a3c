package migrate

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func TestRun_AppliesSchema(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The sensors table must exist and accept rows after migration.
	_, err := db.Exec(`INSERT INTO sensors (id, name, temperature_entity, humidity_entity)
		VALUES ('hx-1', 'Test', 'sensor.t', 'sensor.h')`)
	if err != nil {
		t.Fatalf("insert into sensors: %v", err)
	}

	var version string
	if err := db.QueryRow(`SELECT version FROM schema_migrations ORDER BY version LIMIT 1`).Scan(&version); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if version != "0001" {
		t.Errorf("first applied version = %q; want 0001", version)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := Run(db); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Errorf("applied migrations = %d; want 1", n)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  string
		name     string
		ok       bool
	}{
		{"0001_sensors.sql", "0001", "sensors", true},
		{"0930_add_column.sql", "0930", "add_column", true},
		{"readme.md", "", "", false},
		{"01_short.sql", "", "", false},
	}
	for _, tt := range tests {
		version, name, ok := parseMigrationFilename(tt.filename)
		if version != tt.version || name != tt.name || ok != tt.ok {
			t.Errorf("parseMigrationFilename(%q) = (%q, %q, %v); want (%q, %q, %v)",
				tt.filename, version, name, ok, tt.version, tt.name, tt.ok)
		}
	}
}
