// Package ledger owns the per-session, per-shift remaining-seat counters.
//
// Every mutation is a single conditional statement evaluated by the store,
// so concurrent callers racing for the last seat of a pool cannot both win.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"workshopBooker/internal/models"
)

var (
	ErrExhausted       = errors.New("no seats left in this shift")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidShift    = errors.New("invalid shift")
)

// Ledger mutates seat counters through q, which is normally the transaction
// the rest of the unit of work runs in.
type Ledger struct {
	q sqlx.ExtContext
}

func New(q sqlx.ExtContext) *Ledger {
	return &Ledger{q: q}
}

func column(shift models.Shift) (string, error) {
	switch shift {
	case models.Shift1:
		return "seats_shift1", nil
	case models.Shift2:
		return "seats_shift2", nil
	default:
		return "", ErrInvalidShift
	}
}

// TryReserve takes one seat from the (sessionID, shift) pool. It returns nil
// when the seat was taken and ErrExhausted, without side effects, when the
// pool is already empty.
func (l *Ledger) TryReserve(ctx context.Context, sessionID int64, shift models.Shift) error {
	col, err := column(shift)
	if err != nil {
		return err
	}

	query := l.q.Rebind(fmt.Sprintf(
		`UPDATE sessions SET %[1]s = %[1]s - 1 WHERE id = ? AND %[1]s > 0`, col))

	res, err := l.q.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to reserve seat: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reserve seat: %w", err)
	}
	if n == 1 {
		return nil
	}

	exists, err := l.sessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSessionNotFound
	}

	return ErrExhausted
}

// Release gives one seat back to the (sessionID, shift) pool.
func (l *Ledger) Release(ctx context.Context, sessionID int64, shift models.Shift) error {
	col, err := column(shift)
	if err != nil {
		return err
	}

	query := l.q.Rebind(fmt.Sprintf(`UPDATE sessions SET %[1]s = %[1]s + 1 WHERE id = ?`, col))

	res, err := l.q.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Remaining reads the current counter for (sessionID, shift).
func (l *Ledger) Remaining(ctx context.Context, sessionID int64, shift models.Shift) (int, error) {
	col, err := column(shift)
	if err != nil {
		return 0, err
	}

	query := l.q.Rebind(fmt.Sprintf(`SELECT %s FROM sessions WHERE id = ?`, col))

	var seats int
	if err = sqlx.GetContext(ctx, l.q, &seats, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("failed to read seats: %w", err)
	}

	return seats, nil
}

func (l *Ledger) sessionExists(ctx context.Context, sessionID int64) (bool, error) {
	query := l.q.Rebind(`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)`)

	var exists bool
	if err := sqlx.GetContext(ctx, l.q, &exists, query, sessionID); err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}

	return exists, nil
}
