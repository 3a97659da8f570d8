package sqlite

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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/halcyon-labs/docindexer/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

// Store is a SQLite-backed run ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite run store at the specified data directory.
// If dataDir is empty, defaults to ~/.docindexer/data/runs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docindexer", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveRun records a completed run and its errors, returning the
// assigned run ID.
func (s *Store) SaveRun(ctx context.Context, rec driven.RunRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (folder_id, started_at, total_documents, processed, failed, total_chunks, total_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.FolderID, rec.StartedAt.UTC(), rec.Stats.TotalDocuments, rec.Stats.Processed,
		rec.Stats.Failed, rec.Stats.TotalChunks, rec.Stats.TotalTime.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("saving run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting run id: %w", err)
	}

	for _, message := range rec.Stats.Errors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_errors (run_id, message) VALUES (?, ?)
		`, runID, message); err != nil {
			return 0, fmt.Errorf("saving run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]driven.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, folder_id, started_at, total_documents, processed, failed, total_chunks, total_time_ms
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []driven.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec driven.RunRecord
		var startedAt time.Time
		var totalTimeMs int64
		if err := rows.Scan(&rec.ID, &rec.FolderID, &startedAt, &rec.Stats.TotalDocuments,
			&rec.Stats.Processed, &rec.Stats.Failed, &rec.Stats.TotalChunks, &totalTimeMs); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.StartedAt = startedAt
		rec.Stats.TotalTime = time.Duration(totalTimeMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range records {
		errors, err := s.runErrors(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Stats.Errors = errors
	}

	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) runErrors(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message FROM run_errors WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run errors: %w", err)
	}
	defer rows.Close()

	var messages []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var message string
		if err := rows.Scan(&message); err != nil {
			return nil, fmt.Errorf("scanning run error: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run errors: %w", err)
	}
	return messages, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
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
