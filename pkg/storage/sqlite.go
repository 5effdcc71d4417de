package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/nsflow/pkg/diagram"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteArchive implements diagram.Repository on a SQLite database. Every
// save appends a revision; Load returns the latest one.
type SQLiteArchive struct {
	db *sql.DB
}

// Revision describes one archived version of a diagram
type Revision struct {
	DiagramID diagram.ID
	Number    int
	SavedAt   time.Time
}

// Summary is the catalogue entry of an archived diagram
type Summary struct {
	ID           diagram.ID
	Name         string
	Type         diagram.RootType
	Author       string
	ElementCount int
	Modified     time.Time
	Revisions    int
}

// NewSQLiteArchive opens the archive at ~/.nsflow/archive.db
func NewSQLiteArchive() (*SQLiteArchive, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewSQLiteArchiveWithPath(filepath.Join(homeDir, ".nsflow", "archive.db"))
}

// NewSQLiteArchiveWithPath opens an archive with a custom database path
func NewSQLiteArchiveWithPath(dbPath string) (*SQLiteArchive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &SQLiteArchive{db: db}, nil
}

// Close closes the database connection
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// Save stores the diagram as its newest revision
func (a *SQLiteArchive) Save(root *diagram.Root) error {
	if root == nil {
		return fmt.Errorf("cannot save nil diagram")
	}
	if root.ID == "" {
		return fmt.Errorf("diagram must have an ID")
	}

	content, err := diagram.Marshal(root)
	if err != nil {
		return err
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO diagrams (
			id, name, type, author, content, element_count, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			author = excluded.author,
			content = excluded.content,
			element_count = excluded.element_count,
			modified_at = excluded.modified_at,
			archived_at = CURRENT_TIMESTAMP
	`
	_, err = tx.Exec(query,
		root.ID.String(),
		root.Name(),
		root.Type.String(),
		root.Author,
		string(content),
		root.Main().Count()-1,
		root.Created,
		root.LastModified,
	)
	if err != nil {
		return fmt.Errorf("failed to save diagram: %w", err)
	}

	var next int
	err = tx.QueryRow("SELECT COALESCE(MAX(revision), 0) + 1 FROM revisions WHERE diagram_id = ?", root.ID.String()).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to determine revision: %w", err)
	}
	_, err = tx.Exec("INSERT INTO revisions (diagram_id, revision, content, saved_at) VALUES (?, ?, ?, ?)",
		root.ID.String(), next, string(content), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load returns the latest revision of a diagram
func (a *SQLiteArchive) Load(id diagram.ID) (*diagram.Root, error) {
	if id == "" {
		return nil, fmt.Errorf("diagram ID cannot be empty")
	}
	var content string
	err := a.db.QueryRow("SELECT content FROM diagrams WHERE id = ?", id.String()).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load diagram: %w", err)
	}
	return diagram.Parse([]byte(content))
}

// LoadRevision returns a specific archived revision
func (a *SQLiteArchive) LoadRevision(id diagram.ID, revision int) (*diagram.Root, error) {
	var content string
	err := a.db.QueryRow("SELECT content FROM revisions WHERE diagram_id = ? AND revision = ?",
		id.String(), revision).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s revision %d", diagram.ErrDiagramNotFound, id, revision)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load revision: %w", err)
	}
	return diagram.Parse([]byte(content))
}

// Revisions lists the archived revisions of a diagram, newest first
func (a *SQLiteArchive) Revisions(id diagram.ID) ([]Revision, error) {
	rows, err := a.db.Query("SELECT revision, saved_at FROM revisions WHERE diagram_id = ? ORDER BY revision DESC", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var revs []Revision
	for rows.Next() {
		rev := Revision{DiagramID: id}
		if err := rows.Scan(&rev.Number, &rev.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revisions: %w", err)
	}
	return revs, nil
}

// Exists reports whether a diagram is archived
func (a *SQLiteArchive) Exists(id diagram.ID) (bool, error) {
	var n int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM diagrams WHERE id = ?", id.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check diagram: %w", err)
	}
	return n > 0, nil
}

// Delete removes a diagram and all its revisions
func (a *SQLiteArchive) Delete(id diagram.ID) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM revisions WHERE diagram_id = ?", id.String()); err != nil {
		return fmt.Errorf("failed to delete revisions: %w", err)
	}
	res, err := tx.Exec("DELETE FROM diagrams WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete diagram: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List loads the latest revision of every archived diagram, most
// recently modified first
func (a *SQLiteArchive) List() ([]*diagram.Root, error) {
	rows, err := a.db.Query("SELECT id, content FROM diagrams ORDER BY modified_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query diagrams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var roots []*diagram.Root
	for rows.Next() {
		var id, content string
		if err := rows.Scan(&id, &content); err != nil {
			return nil, fmt.Errorf("failed to scan diagram: %w", err)
		}
		root, err := diagram.Parse([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse archived diagram %s: %w", id, err)
		}
		roots = append(roots, root)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diagrams: %w", err)
	}
	return roots, nil
}

// Catalog returns summaries of all archived diagrams without parsing
// their contents
func (a *SQLiteArchive) Catalog() ([]Summary, error) {
	query := `
		SELECT d.id, d.name, d.type, COALESCE(d.author, ''), d.element_count, d.modified_at,
		       (SELECT COUNT(*) FROM revisions r WHERE r.diagram_id = d.id)
		FROM diagrams d
		ORDER BY d.name, d.modified_at DESC
	`
	rows, err := a.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var s Summary
		var id, typ string
		if err := rows.Scan(&id, &s.Name, &typ, &s.Author, &s.ElementCount, &s.Modified, &s.Revisions); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		s.ID = diagram.ID(id)
		s.Type = diagram.ParseRootType(typ)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}
	return out, nil
}
