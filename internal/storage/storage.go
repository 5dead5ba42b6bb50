package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Dialect carries what differs between backends. Queries are written with
// '?' placeholders and rebound by sqlx for the driver in use.
type Dialect interface {
	Name() string
	Schema() []string
	IsUniqueViolation(err error) bool
	// IsRetryable reports transient failures after which the whole
	// transaction can be replayed by the caller.
	IsRetryable(err error) bool
	// LockClause is appended to a SELECT to hold a row lock until the
	// transaction ends. Empty where the backend serializes writers.
	LockClause() string
	TxOptions(isolation string) *sql.TxOptions
}

type DB struct {
	*sqlx.DB
	Dialect Dialect
}

func New(db *sqlx.DB, dialect Dialect) *DB {
	return &DB{DB: db, Dialect: dialect}
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range db.Dialect.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}

// Entities returns the entity queries bound to the handle itself, outside
// any transaction.
func (db *DB) Entities() *Entities {
	return NewEntities(db.DB, db.Dialect)
}
