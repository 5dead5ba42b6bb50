// Package enrollment registers people into capacity-limited workshop
// sessions and moves them between sessions.
//
// Every mutating operation runs as one Guard unit of work: it reads the
// current state, reserves and releases seats through the ledger and writes
// enrollments in the same transaction, so a failure at any step leaves the
// store as it was before the call.
package enrollment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"workshopBooker/internal/ledger"
	"workshopBooker/internal/lib/logger/sl"
	"workshopBooker/internal/models"
	"workshopBooker/internal/storage"
)

type Options struct {
	// SingleEnrollmentPerRegistrant limits every registrant to one
	// enrollment system-wide. When false, a registrant may hold one
	// enrollment per session.
	SingleEnrollmentPerRegistrant bool
}

type Service struct {
	log   *slog.Logger
	db    *storage.DB
	guard *Guard
	opts  Options
}

func New(log *slog.Logger, db *storage.DB, guard *Guard, opts Options) *Service {
	return &Service{
		log:   log.With(slog.String("component", "enrollment/service")),
		db:    db,
		guard: guard,
		opts:  opts,
	}
}

type EnrollRequest struct {
	Email     string
	Name      string
	SessionID int64
	Shift     models.Shift
}

type TransferRequest struct {
	Email string
	// FromSessionID names the session being left. Zero means the
	// registrant's sole enrollment.
	FromSessionID int64
	SessionID     int64
	Shift         models.Shift
}

func (s *Service) Enroll(ctx context.Context, req EnrollRequest) error {
	const op = "enroll"

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if !req.Shift.Valid() {
		return newError(KindInvalidInput, "invalid shift")
	}
	if req.Email == "" {
		return newError(KindInvalidInput, "email is required")
	}
	if req.Name == "" {
		return newError(KindInvalidInput, "name is required")
	}
	if req.SessionID <= 0 {
		return newError(KindInvalidInput, "session id is required")
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", req.Email),
		slog.Int64("session_id", req.SessionID),
		slog.String("shift", string(req.Shift)),
	)

	var enrollmentID int64

	err := s.guard.Do(ctx, op, func(ctx context.Context, u *Unit) error {
		if _, err := u.Store.SessionByID(ctx, req.SessionID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return newError(KindNotFound, "session not found")
			}
			return err
		}

		reg, err := u.Store.EnsureRegistrant(ctx, req.Name, req.Email)
		if err != nil {
			return err
		}

		current, err := u.Store.EnrollmentsByRegistrant(ctx, reg.ID)
		if err != nil {
			return err
		}
		for _, en := range current {
			if en.SessionID == req.SessionID {
				return newError(KindAlreadyEnrolled, "registrant already enrolled in this session")
			}
		}
		if s.opts.SingleEnrollmentPerRegistrant && len(current) > 0 {
			return newError(KindAlreadyEnrolled, "registrant already enrolled in another session")
		}

		if err = reserve(ctx, u, req.SessionID, req.Shift); err != nil {
			return err
		}

		en := &models.Enrollment{
			RegistrantID: reg.ID,
			SessionID:    req.SessionID,
			Shift:        req.Shift,
		}
		if err = u.Store.InsertEnrollment(ctx, en); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return newError(KindAlreadyEnrolled, "registrant already enrolled in this session")
			}
			return err
		}

		enrollmentID = en.ID

		return nil
	})
	if err != nil {
		logRejected(log, err)
		return err
	}

	log.Info("registrant enrolled", slog.Int64("enrollment_id", enrollmentID))

	return nil
}

// Transfer moves a registrant's enrollment to SessionID/Shift. The new seat
// is reserved before the old one is released, in the same transaction, so a
// full destination leaves the original enrollment and its pool untouched.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) error {
	const op = "transfer"

	req.Email = strings.TrimSpace(req.Email)

	if !req.Shift.Valid() {
		return newError(KindInvalidInput, "invalid shift")
	}
	if req.Email == "" {
		return newError(KindInvalidInput, "email is required")
	}
	if req.SessionID <= 0 {
		return newError(KindInvalidInput, "new session id is required")
	}
	if req.FromSessionID < 0 {
		return newError(KindInvalidInput, "current session id is invalid")
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", req.Email),
		slog.Int64("session_id", req.SessionID),
		slog.String("shift", string(req.Shift)),
	)

	noop := false

	err := s.guard.Do(ctx, op, func(ctx context.Context, u *Unit) error {
		reg, err := u.Store.LockRegistrantByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return newError(KindNotFound, "registrant not found")
			}
			return err
		}

		enrollments, err := u.Store.EnrollmentsByRegistrant(ctx, reg.ID)
		if err != nil {
			return err
		}

		current, err := s.currentEnrollment(enrollments, req.FromSessionID)
		if err != nil {
			return err
		}

		if current.SessionID == req.SessionID && current.Shift == req.Shift {
			noop = true
			return nil
		}

		for _, en := range enrollments {
			if en.ID != current.ID && en.SessionID == req.SessionID {
				return newError(KindAlreadyEnrolled, "registrant already enrolled in the new session")
			}
		}

		// Both pools are touched below; lock them in id order so two
		// opposite transfers cannot deadlock.
		if err = u.Store.LockSessions(ctx, current.SessionID, req.SessionID); err != nil {
			return err
		}

		if err = reserve(ctx, u, req.SessionID, req.Shift); err != nil {
			return err
		}

		if err = u.Store.DeleteEnrollment(ctx, current.ID); err != nil {
			return err
		}

		if err = u.Ledger.Release(ctx, current.SessionID, current.Shift); err != nil {
			return err
		}

		en := &models.Enrollment{
			RegistrantID: reg.ID,
			SessionID:    req.SessionID,
			Shift:        req.Shift,
		}
		if err = u.Store.InsertEnrollment(ctx, en); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return newError(KindAlreadyEnrolled, "registrant already enrolled in the new session")
			}
			return err
		}

		return nil
	})
	if err != nil {
		logRejected(log, err)
		return err
	}

	if noop {
		log.Debug("transfer target equals current enrollment")
		return nil
	}

	log.Info("enrollment transferred")

	return nil
}

func (s *Service) currentEnrollment(enrollments []models.Enrollment, fromSessionID int64) (models.Enrollment, error) {
	if fromSessionID != 0 {
		for _, en := range enrollments {
			if en.SessionID == fromSessionID {
				return en, nil
			}
		}
		return models.Enrollment{}, newError(KindNotFound, "current enrollment not found")
	}

	switch len(enrollments) {
	case 0:
		return models.Enrollment{}, newError(KindNotFound, "current enrollment not found")
	case 1:
		return enrollments[0], nil
	default:
		return models.Enrollment{}, newError(KindInvalidInput, "registrant holds several enrollments, current session id is required")
	}
}

// reserve takes a seat and maps ledger outcomes to service errors.
func reserve(ctx context.Context, u *Unit, sessionID int64, shift models.Shift) error {
	err := u.Ledger.TryReserve(ctx, sessionID, shift)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrExhausted):
		return newError(KindCapacityExceeded, "no seats left in this shift")
	case errors.Is(err, ledger.ErrSessionNotFound):
		return newError(KindNotFound, "session not found")
	case errors.Is(err, ledger.ErrInvalidShift):
		return newError(KindInvalidInput, "invalid shift")
	default:
		return err
	}
}

// List returns every enrollment joined with its registrant and session.
func (s *Service) List(ctx context.Context) ([]models.EnrollmentDetail, error) {
	details, err := s.db.Entities().ListEnrollmentDetails(ctx)
	if err != nil {
		return nil, storageError("list enrollments", err)
	}

	return details, nil
}

func (s *Service) ListSessions(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.db.Entities().ListSessions(ctx)
	if err != nil {
		return nil, storageError("list sessions", err)
	}

	return sessions, nil
}

// Seed inserts sessions in one transaction. It is not idempotent: seeding
// the same specs twice creates duplicates.
func (s *Service) Seed(ctx context.Context, specs []models.SessionSpec) ([]int64, error) {
	const op = "seed"

	for i := range specs {
		specs[i].Name = strings.TrimSpace(specs[i].Name)
		specs[i].Location = strings.TrimSpace(specs[i].Location)

		if specs[i].Name == "" {
			return nil, newError(KindInvalidInput, "session name is required")
		}
		if specs[i].SeatsShift1 < 0 || specs[i].SeatsShift2 < 0 {
			return nil, newError(KindInvalidInput, "session seats must not be negative")
		}
	}

	ids := make([]int64, 0, len(specs))

	err := s.guard.Do(ctx, op, func(ctx context.Context, u *Unit) error {
		for _, spec := range specs {
			id, err := u.Store.InsertSession(ctx, spec)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		logRejected(s.log.With(slog.String("op", op)), err)
		return nil, err
	}

	s.log.Info("sessions seeded", slog.String("op", op), slog.Int("count", len(ids)))

	return ids, nil
}

// Reset deletes every enrollment, registrant and session in one
// transaction.
func (s *Service) Reset(ctx context.Context) error {
	const op = "reset"

	err := s.guard.Do(ctx, op, func(ctx context.Context, u *Unit) error {
		return u.Store.DeleteAll(ctx)
	})
	if err != nil {
		logRejected(s.log.With(slog.String("op", op)), err)
		return err
	}

	s.log.Info("all tables cleared", slog.String("op", op))

	return nil
}

// Audit reports broken invariants across the whole store.
func (s *Service) Audit(ctx context.Context) ([]Violation, error) {
	return s.guard.Audit(ctx, s.opts.SingleEnrollmentPerRegistrant)
}

func logRejected(log *slog.Logger, err error) {
	kind := KindOf(err)
	if kind == KindStorage {
		log.Error("operation failed", slog.String("kind", kind.String()), sl.Err(err))
		return
	}
	log.Warn("operation rejected", slog.String("kind", kind.String()), slog.String("reason", PublicMessage(err)))
}
