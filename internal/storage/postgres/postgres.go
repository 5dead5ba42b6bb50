package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"workshopBooker/internal/config"
	"workshopBooker/internal/storage"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeQueryCanceled        = "57014"
)

func InitDB(dbCfg *config.Database) (*storage.DB, error) {
	db, err := sqlx.Open("postgres", DSN(dbCfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if dbCfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return storage.New(db, Dialect{}), nil
}

func DSN(dbCfg *config.Database) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)
}

type Dialect struct{}

func (Dialect) Name() string {
	return "postgres"
}

func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS registrants (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			seats_shift1 INTEGER NOT NULL CHECK (seats_shift1 >= 0),
			seats_shift2 INTEGER NOT NULL CHECK (seats_shift2 >= 0),
			capacity_shift1 INTEGER NOT NULL CHECK (capacity_shift1 >= 0),
			capacity_shift2 INTEGER NOT NULL CHECK (capacity_shift2 >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id BIGSERIAL PRIMARY KEY,
			registrant_id BIGINT NOT NULL REFERENCES registrants (id),
			session_id BIGINT NOT NULL REFERENCES sessions (id),
			shift TEXT NOT NULL CHECK (shift IN ('turno1', 'turno2')),
			UNIQUE (registrant_id, session_id)
		)`,
	}
}

func (Dialect) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == codeUniqueViolation
	}
	return false
}

func (Dialect) IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
			return true
		}
	}
	return false
}

func (Dialect) LockClause() string {
	return " FOR UPDATE"
}

func (Dialect) TxOptions(isolation string) *sql.TxOptions {
	level := sql.LevelReadCommitted
	if isolation == config.IsolationSerializable {
		level = sql.LevelSerializable
	}
	return &sql.TxOptions{Isolation: level}
}
