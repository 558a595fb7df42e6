package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aathoos-core/validator"

	_ "github.com/mattn/go-sqlite3"
)

// JournalModes lists the values accepted for Options.JournalMode.
const JournalModes = "DELETE TRUNCATE PERSIST MEMORY WAL OFF"

// Options tune how the store file is opened.
type Options struct {
	JournalMode   string
	BusyTimeoutMS int
}

// DefaultOptions is used when Open is called without options.
var DefaultOptions = Options{
	JournalMode:   "WAL",
	BusyTimeoutMS: 5000,
}

// DB owns the single connection to the embedded store.
// Repositories borrow it and must not outlive it.
type DB struct {
	*sql.DB

	path      string
	closeOnce sync.Once
	closeErr  error
}

// Open creates the store at dbPath if absent and ensures the schema exists.
func Open(dbPath string) (*DB, error) {
	return OpenWithOptions(dbPath, DefaultOptions)
}

func OpenWithOptions(dbPath string, opts Options) (*DB, error) {
	const op = "database.Open"

	if dbPath == "" {
		return nil, storeError(op, errors.New("empty database path"))
	}

	// Ensure directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, storeError(op, fmt.Errorf("failed to create database directory: %w", err))
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, storeError(op, fmt.Errorf("failed to open database: %w", err))
	}

	// One connection: the store is single-handle, callers serialize access.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{DB: conn, path: dbPath}

	if err := db.configure(opts); err != nil {
		conn.Close()
		return nil, storeError(op, err)
	}

	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) configure(opts Options) error {
	if opts.JournalMode == "" {
		opts.JournalMode = DefaultOptions.JournalMode
	}
	if err := validator.Default().Var(opts.JournalMode, "oneof="+JournalModes); err != nil {
		return fmt.Errorf("journal mode %q: %w", opts.JournalMode, err)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA journal_mode=%s", opts.JournalMode),
		"PRAGMA foreign_keys=ON",
	}
	if opts.BusyTimeoutMS > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA busy_timeout=%d", opts.BusyTimeoutMS))
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	return nil
}

// Migrate creates the entity tables if they do not exist.
func (db *DB) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			notes TEXT,
			due_date INTEGER,
			priority INTEGER NOT NULL DEFAULT 1,
			is_completed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			subject TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			target_date INTEGER,
			progress REAL NOT NULL DEFAULT 0.0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS study_sessions (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			duration_secs INTEGER NOT NULL,
			notes TEXT,
			started_at INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_tasks_incomplete ON tasks(is_completed, due_date)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_subject ON notes(subject)`,
		`CREATE INDEX IF NOT EXISTS idx_study_sessions_subject ON study_sessions(subject)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return storeError("database.Migrate", fmt.Errorf("migration failed: %w", err))
		}
	}

	return nil
}

// Path returns the file the handle was opened on.
func (db *DB) Path() string {
	return db.path
}

// Close releases the connection. Calling it again is a no-op.
func (db *DB) Close() error {
	db.closeOnce.Do(func() {
		db.closeErr = db.DB.Close()
	})
	return db.closeErr
}
