package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"workshopBooker/internal/storage"
)

// Open opens the SQLite file at path, creating its directory if needed.
// SQLite has a single writer, so the pool is limited to one connection and
// every transaction runs serialized.
func Open(path string) (*storage.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
	}

	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	return storage.New(db, Dialect{}), nil
}

type Dialect struct{}

func (Dialect) Name() string {
	return "sqlite"
}

func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS registrants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			seats_shift1 INTEGER NOT NULL CHECK (seats_shift1 >= 0),
			seats_shift2 INTEGER NOT NULL CHECK (seats_shift2 >= 0),
			capacity_shift1 INTEGER NOT NULL CHECK (capacity_shift1 >= 0),
			capacity_shift2 INTEGER NOT NULL CHECK (capacity_shift2 >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			registrant_id INTEGER NOT NULL REFERENCES registrants (id),
			session_id INTEGER NOT NULL REFERENCES sessions (id),
			shift TEXT NOT NULL CHECK (shift IN ('turno1', 'turno2')),
			UNIQUE (registrant_id, session_id)
		)`,
	}
}

func (Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func (Dialect) IsRetryable(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

func (Dialect) LockClause() string {
	return ""
}

// TxOptions returns nil: SQLite transactions are always serializable.
func (Dialect) TxOptions(string) *sql.TxOptions {
	return nil
}
