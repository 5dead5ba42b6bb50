package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"workshopBooker/internal/models"
)

// Entities runs the registrant, session and enrollment queries against
// either a *sqlx.DB or a *sqlx.Tx.
type Entities struct {
	q       sqlx.ExtContext
	dialect Dialect
}

func NewEntities(q sqlx.ExtContext, dialect Dialect) *Entities {
	return &Entities{q: q, dialect: dialect}
}

func (e *Entities) RegistrantByEmail(ctx context.Context, email string) (*models.Registrant, error) {
	return e.registrantByEmail(ctx, email, "")
}

// LockRegistrantByEmail reads the registrant and holds its row lock until the
// surrounding transaction ends.
func (e *Entities) LockRegistrantByEmail(ctx context.Context, email string) (*models.Registrant, error) {
	return e.registrantByEmail(ctx, email, e.dialect.LockClause())
}

func (e *Entities) registrantByEmail(ctx context.Context, email, lock string) (*models.Registrant, error) {
	query := e.q.Rebind(`SELECT id, name, email FROM registrants WHERE email = ?` + lock)

	var r models.Registrant
	if err := sqlx.GetContext(ctx, e.q, &r, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registrant: %w", err)
	}

	return &r, nil
}

// EnsureRegistrant returns the registrant with the given email, creating it
// with name if it does not exist yet. The email constraint decides races.
func (e *Entities) EnsureRegistrant(ctx context.Context, name, email string) (*models.Registrant, error) {
	query := e.q.Rebind(`
		INSERT INTO registrants (name, email)
		VALUES (?, ?)
		ON CONFLICT (email) DO NOTHING`)

	if _, err := e.q.ExecContext(ctx, query, name, email); err != nil {
		return nil, fmt.Errorf("failed to create registrant: %w", err)
	}

	r, err := e.LockRegistrantByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registrant: %w", err)
	}

	return r, nil
}

func (e *Entities) InsertSession(ctx context.Context, spec models.SessionSpec) (int64, error) {
	query := e.q.Rebind(`
		INSERT INTO sessions (name, location, seats_shift1, seats_shift2, capacity_shift1, capacity_shift2)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := e.q.QueryRowxContext(ctx, query,
		spec.Name,
		spec.Location,
		spec.SeatsShift1,
		spec.SeatsShift2,
		spec.SeatsShift1,
		spec.SeatsShift2,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

func (e *Entities) SessionByID(ctx context.Context, id int64) (*models.Session, error) {
	query := e.q.Rebind(`
		SELECT id, name, location, seats_shift1, seats_shift2, capacity_shift1, capacity_shift2
		FROM sessions
		WHERE id = ?`)

	var s models.Session
	if err := sqlx.GetContext(ctx, e.q, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &s, nil
}

// LockSessions takes row locks on the given sessions in id order. It is a
// no-op on backends without row locks.
func (e *Entities) LockSessions(ctx context.Context, ids ...int64) error {
	lock := e.dialect.LockClause()
	if lock == "" || len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`SELECT id FROM sessions WHERE id IN (?) ORDER BY id`+lock, ids)
	if err != nil {
		return fmt.Errorf("failed to build session lock: %w", err)
	}

	var locked []int64
	if err = sqlx.SelectContext(ctx, e.q, &locked, e.q.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to lock sessions: %w", err)
	}

	return nil
}

func (e *Entities) ListSessions(ctx context.Context) ([]models.Session, error) {
	query := `
		SELECT id, name, location, seats_shift1, seats_shift2, capacity_shift1, capacity_shift2
		FROM sessions
		ORDER BY id`

	sessions := []models.Session{}
	if err := sqlx.SelectContext(ctx, e.q, &sessions, query); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (e *Entities) EnrollmentsByRegistrant(ctx context.Context, registrantID int64) ([]models.Enrollment, error) {
	query := e.q.Rebind(`
		SELECT id, registrant_id, session_id, shift
		FROM enrollments
		WHERE registrant_id = ?
		ORDER BY id`)

	var enrollments []models.Enrollment
	if err := sqlx.SelectContext(ctx, e.q, &enrollments, query, registrantID); err != nil {
		return nil, fmt.Errorf("failed to list registrant enrollments: %w", err)
	}

	return enrollments, nil
}

// InsertEnrollment stores en and sets its ID. A second enrollment for the
// same registrant and session yields ErrDuplicate.
func (e *Entities) InsertEnrollment(ctx context.Context, en *models.Enrollment) error {
	query := e.q.Rebind(`
		INSERT INTO enrollments (registrant_id, session_id, shift)
		VALUES (?, ?, ?)
		RETURNING id`)

	err := e.q.QueryRowxContext(ctx, query, en.RegistrantID, en.SessionID, string(en.Shift)).Scan(&en.ID)
	if err != nil {
		if e.dialect.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

func (e *Entities) DeleteEnrollment(ctx context.Context, id int64) error {
	query := e.q.Rebind(`DELETE FROM enrollments WHERE id = ?`)

	res, err := e.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (e *Entities) ListEnrollmentDetails(ctx context.Context) ([]models.EnrollmentDetail, error) {
	query := `
		SELECT
			r.name AS registrant_name,
			r.email AS registrant_email,
			s.name AS session_name,
			s.location AS location,
			e.shift AS shift
		FROM enrollments e
		JOIN registrants r ON r.id = e.registrant_id
		JOIN sessions s ON s.id = e.session_id
		ORDER BY e.id`

	details := []models.EnrollmentDetail{}
	if err := sqlx.SelectContext(ctx, e.q, &details, query); err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	for i := range details {
		details[i].ShiftLabel = details[i].Shift.Label()
	}

	return details, nil
}

// DeleteAll clears every relation, children first.
func (e *Entities) DeleteAll(ctx context.Context) error {
	for _, table := range []string{"enrollments", "registrants", "sessions"} {
		if _, err := e.q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return nil
}
