package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"workshopBooker/internal/ledger"
	"workshopBooker/internal/lib/logger/sl"
	"workshopBooker/internal/storage"
)

// Unit is the view of the store a unit of work gets: entity queries and the
// capacity ledger, both bound to the same transaction.
type Unit struct {
	Store  *storage.Entities
	Ledger *ledger.Ledger
}

type GuardOptions struct {
	Isolation string
	Timeout   time.Duration
}

// Guard draws the transaction boundary around a unit of work. The work
// either commits as a whole or leaves no trace; no automatic retry happens.
type Guard struct {
	log  *slog.Logger
	db   *storage.DB
	opts GuardOptions
}

func NewGuard(log *slog.Logger, db *storage.DB, opts GuardOptions) *Guard {
	return &Guard{
		log:  log.With(slog.String("component", "enrollment/guard")),
		db:   db,
		opts: opts,
	}
}

// Do runs fn inside one transaction. Any error returned by fn, or a panic,
// rolls the transaction back. Errors that are not already *Error are
// reported as KindStorage.
func (g *Guard) Do(ctx context.Context, op string, fn func(ctx context.Context, u *Unit) error) (err error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	tx, err := g.db.BeginTxx(ctx, g.db.Dialect.TxOptions(g.opts.Isolation))
	if err != nil {
		return g.classify(op, fmt.Errorf("failed to begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	u := &Unit{
		Store:  storage.NewEntities(tx, g.db.Dialect),
		Ledger: ledger.New(tx),
	}

	if err = fn(ctx, u); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			g.log.Error("failed to roll back", slog.String("op", op), sl.Err(rbErr))
		}
		return g.classify(op, err)
	}

	if err = tx.Commit(); err != nil {
		return g.classify(op, fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func (g *Guard) classify(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	se := storageError(op, err)
	if errors.Is(err, context.DeadlineExceeded) {
		se.Message = "storage timeout during " + op
		se.Retryable = true
	} else if g.db.Dialect.IsRetryable(err) {
		se.Retryable = true
	}

	return se
}

// Violation describes one broken invariant found by Audit.
type Violation struct {
	Invariant string
	Detail    string
}

const (
	InvariantNonNegative      = "non_negative_seats"
	InvariantConservation     = "seat_conservation"
	InvariantUniqueEnrollment = "unique_enrollment"
	InvariantReferences       = "referential_integrity"
	InvariantSingleEnrollment = "single_enrollment"
)

// Audit reads the whole store in one transaction and reports every broken
// invariant. An empty result means the live capacity state is consistent.
func (g *Guard) Audit(ctx context.Context, singleEnrollment bool) ([]Violation, error) {
	var violations []Violation

	err := g.Do(ctx, "audit", func(ctx context.Context, u *Unit) error {
		usage, err := u.Store.SessionUsage(ctx)
		if err != nil {
			return err
		}
		for _, s := range usage {
			if s.Seats1 < 0 || s.Seats2 < 0 {
				violations = append(violations, Violation{
					Invariant: InvariantNonNegative,
					Detail:    fmt.Sprintf("session %d has seats %d/%d", s.SessionID, s.Seats1, s.Seats2),
				})
			}
			if s.Consumed1 != s.Enrolled1 || s.Consumed2 != s.Enrolled2 {
				violations = append(violations, Violation{
					Invariant: InvariantConservation,
					Detail: fmt.Sprintf("session %d consumed %d/%d but has %d/%d enrollments",
						s.SessionID, s.Consumed1, s.Consumed2, s.Enrolled1, s.Enrolled2),
				})
			}
		}

		dups, err := u.Store.DuplicateEnrollments(ctx)
		if err != nil {
			return err
		}
		for _, d := range dups {
			violations = append(violations, Violation{
				Invariant: InvariantUniqueEnrollment,
				Detail:    fmt.Sprintf("registrant %d has %d enrollments in session %d", d.RegistrantID, d.Count, d.SessionID),
			})
		}

		orphans, err := u.Store.OrphanEnrollments(ctx)
		if err != nil {
			return err
		}
		for _, id := range orphans {
			violations = append(violations, Violation{
				Invariant: InvariantReferences,
				Detail:    fmt.Sprintf("enrollment %d references a missing row", id),
			})
		}

		if !singleEnrollment {
			return nil
		}

		several, err := u.Store.RegistrantsWithSeveralEnrollments(ctx)
		if err != nil {
			return err
		}
		for _, r := range several {
			violations = append(violations, Violation{
				Invariant: InvariantSingleEnrollment,
				Detail:    fmt.Sprintf("registrant %d has %d enrollments", r.RegistrantID, r.Count),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return violations, nil
}
