package storage

import (
	"fmt"
	"log/slog"
)

// RunMigrations applies any pending database migrations
func (s *SQLite) RunMigrations() error {
	// Databases created by hand or by older builds may lack the table entirely
	if _, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("ensuring kv table: %w", err)
	}

	return s.runUpdatedAtMigration()
}

func (s *SQLite) runUpdatedAtMigration() error {
	var count int
	err := s.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('kv')
		WHERE name = 'updated_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking for updated_at column: %w", err)
	}

	if count > 0 {
		return nil
	}

	slog.Info("running migration: adding kv.updated_at column", "path", s.path)

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// SQLite refuses non-constant defaults on ADD COLUMN; writes stamp it instead
	_, err = tx.Exec(`ALTER TABLE kv ADD COLUMN updated_at DATETIME`)
	if err != nil && err.Error() != "duplicate column name: updated_at" {
		return fmt.Errorf("adding updated_at column: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}

	slog.Info("migration completed successfully")
	return nil
}
