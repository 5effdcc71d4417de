package storage

import (
	"database/sql"
	"fmt"
)

// MigrationVersion tracks the current database schema version.
const MigrationVersion = 2

// InitializeDatabase creates or upgrades the diagram archive schema
func InitializeDatabase(db *sql.DB) error {
	migrationsTable := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version INTEGER NOT NULL UNIQUE,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(migrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}

	migrations := []func(*sql.Tx) error{applyMigration1, applyMigration2}
	for i, apply := range migrations {
		version := i + 1
		if currentVersion >= version {
			continue
		}
		if err := runMigration(db, version, apply); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}
	}
	return nil
}

func runMigration(db *sql.DB, version int, apply func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := apply(tx); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// applyMigration1 creates the diagram table holding the latest version of
// every archived diagram
func applyMigration1(tx *sql.Tx) error {
	diagramsTable := `
	CREATE TABLE diagrams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		author TEXT,
		content TEXT NOT NULL,
		element_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		modified_at TIMESTAMP NOT NULL,
		archived_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := tx.Exec(diagramsTable); err != nil {
		return fmt.Errorf("failed to create diagrams table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX idx_diagrams_name ON diagrams(name);",
		"CREATE INDEX idx_diagrams_modified_at ON diagrams(modified_at DESC);",
	}
	for _, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create diagram index: %w", err)
		}
	}
	return nil
}

// applyMigration2 adds the append-only revision history
func applyMigration2(tx *sql.Tx) error {
	revisionsTable := `
	CREATE TABLE revisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		diagram_id TEXT NOT NULL,
		revision INTEGER NOT NULL,
		content TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		UNIQUE (diagram_id, revision),
		FOREIGN KEY (diagram_id) REFERENCES diagrams(id) ON DELETE CASCADE
	);`

	if _, err := tx.Exec(revisionsTable); err != nil {
		return fmt.Errorf("failed to create revisions table: %w", err)
	}
	if _, err := tx.Exec("CREATE INDEX idx_revisions_diagram_id ON revisions(diagram_id, revision DESC);"); err != nil {
		return fmt.Errorf("failed to create revision index: %w", err)
	}
	return nil
}
