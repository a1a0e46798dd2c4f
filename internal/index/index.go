// Package index maintains a SQLite mirror of the task stores for fast
// search across the primary file and the archive.
//
// The plain-text files stay the source of truth; the index is a disposable
// cache rebuilt from them. It runs embedded with WAL mode so a search can
// read while a rebuild writes.
package index

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/mdillondc/todo-txt-tui/internal/store"
	"github.com/mdillondc/todo-txt-tui/internal/task"
)

// SourcePrimary and SourceArchive name the two mirrored stores.
const (
	SourcePrimary = "todo"
	SourceArchive = "done"
)

// DB wraps the index database connection.
type DB struct {
	conn   *sql.DB
	path   string
	logger *log.Logger
}

// Open creates or opens the index database at the specified path.
//
// The database is opened in embedded mode with WAL for concurrent reads.
// The caller must call Close when done. If logger is nil, a default logger
// writing to stderr is used.
func Open(path string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[index] ", log.LstdFlags)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping index database: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)

	db := &DB{conn: conn, path: path, logger: logger}

	if _, err := db.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// initSchema creates the schema if it doesn't exist. Idempotent.
func (db *DB) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	line      TEXT NOT NULL,
	source    TEXT NOT NULL,
	completed INTEGER NOT NULL,
	priority  TEXT NOT NULL DEFAULT '',
	due       TEXT NOT NULL DEFAULT '',
	hidden    INTEGER NOT NULL,
	PRIMARY KEY (line, source)
);
CREATE INDEX IF NOT EXISTS idx_tasks_source ON tasks(source);
CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due);
`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create index schema: %w", err)
	}
	return nil
}

// Close closes the database connection after checkpointing the WAL.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if _, err := db.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		db.logger.Printf("failed to checkpoint WAL: %v", err)
	}
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close index database: %w", err)
	}
	db.conn = nil
	return nil
}

// Rebuild replaces the mirrored rows of one source with the given lines.
func (db *DB) Rebuild(source string, lines []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks WHERE source = ?", source); err != nil {
		return fmt.Errorf("failed to clear %s rows: %w", source, err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO tasks
		(line, source, completed, priority, due, hidden) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		t := task.Parse(line)
		due := ""
		if _, ok := t.DueTime(); ok {
			due = t.Due
		}
		if _, err := stmt.Exec(line, source, boolInt(t.Completed), t.Priority, due, boolInt(t.Hidden)); err != nil {
			return fmt.Errorf("failed to index line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rebuild: %w", err)
	}
	db.logger.Printf("indexed %d %s lines", len(lines), source)
	return nil
}

// SyncStore rebuilds the index from both the primary store and its archive.
func (db *DB) SyncStore(st *store.Store) error {
	lines, err := st.Read()
	if err != nil {
		return fmt.Errorf("failed to sync primary store: %w", err)
	}
	if err := db.Rebuild(SourcePrimary, lines); err != nil {
		return err
	}
	archived, err := st.ReadArchive()
	if err != nil {
		return fmt.Errorf("failed to sync archive: %w", err)
	}
	return db.Rebuild(SourceArchive, archived)
}

// Search returns indexed lines containing query, case-insensitively, with
// dated tasks first in due order and archive rows after primary rows.
func (db *DB) Search(query string) ([]string, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := db.conn.Query(`SELECT line FROM tasks
		WHERE line LIKE ? ESCAPE '\'
		ORDER BY source = ?, CASE WHEN due = '' THEN 1 ELSE 0 END, due, lower(line)`,
		pattern, SourceArchive)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return lines, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
