package sink

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"auctionload/internal/sink/migrations"
)

// SQLiteSink loads relations into an embedded SQLite database.
type SQLiteSink struct {
	db   *sql.DB
	path string
}

// NewSQLiteSink opens (or creates) the database at path and applies the schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteSink{db: db, path: path}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteSink) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *SQLiteSink) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int

	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string

	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}

	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// WriteRelation replaces the table's contents with rows in one transaction.
func (s *SQLiteSink) WriteRelation(ctx context.Context, name string, rows [][]string) error {
	t, err := lookupTable(name)
	if err != nil {
		return writeErr(name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return writeErr(name, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.name); err != nil {
		return writeErr(name, fmt.Errorf("clearing %s: %w", t.name, err))
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(t))
	if err != nil {
		return writeErr(name, fmt.Errorf("preparing insert: %w", err))
	}
	defer stmt.Close()

	for i, row := range rows {
		// Timestamps stay in their sortable text form.
		values, err := decodeRow(t, row, false)
		if err != nil {
			return writeErr(name, fmt.Errorf("row %d: %w", i, err))
		}

		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return writeErr(name, fmt.Errorf("row %d: %w", i, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return writeErr(name, fmt.Errorf("committing: %w", err))
	}

	return nil
}

// Count returns the number of rows stored for a relation.
func (s *SQLiteSink) Count(ctx context.Context, relation string) (int, error) {
	t, err := lookupTable(relation)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", t.name, err)
	}

	return n, nil
}

func insertSQL(t table) string {
	names := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))

	for i, c := range t.columns {
		names[i] = c.name
		marks[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(names, ", "), strings.Join(marks, ", "))
}
