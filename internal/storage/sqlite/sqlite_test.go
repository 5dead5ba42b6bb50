package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshopBooker/internal/models"
	"workshopBooker/internal/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "nested", "workshops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.EnsureSchema(context.Background()))
	// applying twice is harmless
	require.NoError(t, db.EnsureSchema(context.Background()))

	return db
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open("  ")
	assert.Error(t, err)
}

func TestSchemaConstraints(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	e := db.Entities()

	id, err := e.InsertSession(ctx, models.SessionSpec{Name: "A", Location: "Room1", SeatsShift1: 0, SeatsShift2: 1})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE sessions SET seats_shift1 = seats_shift1 - 1 WHERE id = ?`, id)
	assert.Error(t, err, "seats never go below zero")

	reg, err := e.EnsureRegistrant(ctx, "Alice", "alice@x.com")
	require.NoError(t, err)

	again, err := e.EnsureRegistrant(ctx, "Other", "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, reg, again)

	en := &models.Enrollment{RegistrantID: reg.ID, SessionID: id, Shift: models.Shift2}
	require.NoError(t, e.InsertEnrollment(ctx, en))
	assert.NotZero(t, en.ID)

	err = e.InsertEnrollment(ctx, &models.Enrollment{RegistrantID: reg.ID, SessionID: id, Shift: models.Shift1})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	err = e.InsertEnrollment(ctx, &models.Enrollment{RegistrantID: reg.ID, SessionID: id + 1, Shift: models.Shift1})
	require.Error(t, err, "foreign keys are enforced")
	assert.NotErrorIs(t, err, storage.ErrDuplicate)

	_, err = db.ExecContext(ctx, `INSERT INTO enrollments (registrant_id, session_id, shift) VALUES (?, ?, 'turno3')`, reg.ID, id)
	assert.Error(t, err)
}

func TestEntitiesRoundTrip(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	e := db.Entities()

	id, err := e.InsertSession(ctx, models.SessionSpec{Name: "Robótica", Location: "Lab 1", SeatsShift1: 4, SeatsShift2: 2})
	require.NoError(t, err)

	s, err := e.SessionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.Session{
		ID:             id,
		Name:           "Robótica",
		Location:       "Lab 1",
		SeatsShift1:    4,
		SeatsShift2:    2,
		CapacityShift1: 4,
		CapacityShift2: 2,
	}, *s)

	_, err = e.SessionByID(ctx, id+1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	reg, err := e.EnsureRegistrant(ctx, "Alice", "alice@x.com")
	require.NoError(t, err)
	require.NoError(t, e.InsertEnrollment(ctx, &models.Enrollment{RegistrantID: reg.ID, SessionID: id, Shift: models.Shift1}))

	details, err := e.ListEnrollmentDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Alice", details[0].RegistrantName)
	assert.Equal(t, "Robótica", details[0].SessionName)
	assert.Equal(t, "9:30–11:30", details[0].ShiftLabel)

	// no row locks on sqlite, the call must not touch the database
	require.NoError(t, e.LockSessions(ctx, id, id+1))

	require.NoError(t, e.DeleteAll(ctx))

	sessions, err := e.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDialect(t *testing.T) {
	t.Parallel()

	d := Dialect{}

	assert.Equal(t, "sqlite", d.Name())
	assert.Nil(t, d.TxOptions("serializable"))
	assert.Empty(t, d.LockClause())
	assert.False(t, d.IsUniqueViolation(nil))
}
