// Package store persists the engine's entities in SQLite. Each repo
// contract from internal/vocab and internal/content gets one adapter;
// list-valued fields are stored as JSON columns, scheduling fields as
// queryable scalar columns.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; a larger pool only produces busy errors.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS vocab (
			uid TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			content TEXT NOT NULL,
			length TEXT NOT NULL DEFAULT 'unspecified',
			priority INTEGER NOT NULL DEFAULT 1,
			do_not_practice INTEGER NOT NULL DEFAULT 0,
			translations TEXT NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '[]',
			origins TEXT NOT NULL DEFAULT '[]',
			level INTEGER NOT NULL DEFAULT -1,
			due INTEGER NOT NULL DEFAULT 0,
			progress TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vocab_language_due ON vocab(language, level, due)`,
		`CREATE INDEX IF NOT EXISTS idx_vocab_content ON vocab(language, content)`,
		`CREATE TABLE IF NOT EXISTS translations (
			uid TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			uid TEXT PRIMARY KEY,
			note_type TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS goals (
			uid TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			title TEXT NOT NULL,
			vocab TEXT NOT NULL DEFAULT '[]',
			sub_goals TEXT NOT NULL DEFAULT '[]',
			milestones TEXT NOT NULL DEFAULT '[]',
			is_complete INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS resources (
			uid TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			title TEXT NOT NULL,
			vocab TEXT NOT NULL DEFAULT '[]',
			finished_extracting INTEGER NOT NULL DEFAULT 0,
			last_shown_at INTEGER,
			next_shown_earliest_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS immersion_content (
			uid TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			title TEXT NOT NULL,
			needed_vocab TEXT NOT NULL DEFAULT '[]',
			tasks TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS languages (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS stored_tasks (
			uid TEXT PRIMARY KEY,
			task_type TEXT NOT NULL,
			language TEXT NOT NULL,
			prompt TEXT NOT NULL DEFAULT '',
			is_active INTEGER NOT NULL DEFAULT 1,
			associated_vocab TEXT NOT NULL DEFAULT '[]',
			associated_goals TEXT NOT NULL DEFAULT '[]',
			associated_resources TEXT NOT NULL DEFAULT '[]',
			last_shown_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS daily_counters (
			name TEXT NOT NULL,
			day TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (name, day)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEXIO_DB environment variable
// 2. $XDG_DATA_HOME/lexio/lexio.db
// 3. ~/.local/share/lexio/lexio.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEXIO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lexio", "lexio.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
