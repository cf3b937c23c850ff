package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME
);`

// SQLite stores each key as a row in a single kv table
type SQLite struct {
	conn *sql.DB
	path string
}

// Initialize creates a new database with the complete schema
func Initialize(dbPath string) error {
	// Check if database already exists
	if _, err := os.Stat(dbPath); err == nil {
		return fmt.Errorf("database already exists at %s", dbPath)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// OpenSQLite opens an existing database and applies pending migrations
func OpenSQLite(dbPath string) (*SQLite, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found at %s\nRun 'todos init' to create it", dbPath)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{conn: conn, path: dbPath}

	if err := s.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Name returns the backend identifier
func (s *SQLite) Name() string {
	return "sqlite"
}

// Path returns the database file location
func (s *SQLite) Path() string {
	return s.path
}

// Read returns the value stored under key
func (s *SQLite) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := s.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return value, true, nil
}

// Write upserts the value stored under key
func (s *SQLite) Write(key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = excluded.updated_at
	`
	if _, err := s.conn.Exec(query, key, string(value)); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// openOrInitSQLite creates the database on first use
func openOrInitSQLite(path string) (Backend, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Initialize(path); err != nil {
			return nil, err
		}
	}

	s, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func init() {
	Register("sqlite", openOrInitSQLite)
}
