package storage

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

// createTestSQLite initializes and opens a database in a temp dir
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "todos.db")
	if err := Initialize(dbPath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	s, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteReadWrite(t *testing.T) {
	s := createTestSQLite(t)

	if _, ok, err := s.Read("todos"); err != nil || ok {
		t.Fatalf("Read absent: ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	if err := s.Write("todos", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write("todos", []byte(`[]`)); err != nil {
		t.Fatalf("Write overwrite: %v", err)
	}

	got, ok, err := s.Read("todos")
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if string(got) != "[]" {
		t.Errorf("Read: got %s, want []", got)
	}
}

func TestInitializeRefusesExisting(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "todos.db")
	if err := Initialize(dbPath); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := Initialize(dbPath)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Initialize: got %v, want already exists error", err)
	}
}

func TestOpenSQLiteMissing(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing.db"))
	if err == nil || !strings.Contains(err.Error(), "todos init") {
		t.Errorf("OpenSQLite missing: got %v, want hint to run init", err)
	}
}

func TestMigrationAddsUpdatedAt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	// Build a database with the pre-migration table layout
	legacy, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := legacy.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("creating legacy table: %v", err)
	}
	if _, err := legacy.Exec(`INSERT INTO kv (key, value) VALUES ('todos', '[]')`); err != nil {
		t.Fatalf("seeding legacy row: %v", err)
	}
	legacy.Close()

	s, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	var count int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('kv') WHERE name = 'updated_at'`).Scan(&count); err != nil {
		t.Fatalf("checking column: %v", err)
	}
	if count != 1 {
		t.Fatalf("updated_at column count: got %d, want 1", count)
	}

	// existing data survives and writes stamp the new column
	if got, ok, _ := s.Read("todos"); !ok || string(got) != "[]" {
		t.Errorf("legacy row: got %q ok=%v", got, ok)
	}
	if err := s.Write("todos", []byte(`[1]`)); err != nil {
		t.Fatalf("Write after migration: %v", err)
	}
	var stamped sql.NullString
	if err := s.conn.QueryRow(`SELECT updated_at FROM kv WHERE key = 'todos'`).Scan(&stamped); err != nil {
		t.Fatalf("reading updated_at: %v", err)
	}
	if !stamped.Valid {
		t.Error("updated_at not stamped by Write")
	}
}

func TestSQLiteRegisteredFactoryInitializes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auto", "todos.db")

	b, err := Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if b.Name() != "sqlite" {
		t.Errorf("Name: got %q, want sqlite", b.Name())
	}
	if err := b.Write("k", []byte("v")); err != nil {
		t.Errorf("Write: %v", err)
	}
}
