package enrollment

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"workshopBooker/internal/ledger"
	"workshopBooker/internal/lib/logger/handlers/slogdiscard"
	"workshopBooker/internal/models"
	"workshopBooker/internal/storage"
	"workshopBooker/internal/storage/sqlite"
)

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "workshops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.EnsureSchema(context.Background()))

	return db
}

func newTestService(t *testing.T, single bool) (*Service, *storage.DB) {
	t.Helper()

	db := newTestDB(t)
	log := slogdiscard.NewDiscardLogger()
	guard := NewGuard(log, db, GuardOptions{Timeout: 10 * time.Second})

	return New(log, db, guard, Options{SingleEnrollmentPerRegistrant: single}), db
}

func seed(t *testing.T, svc *Service, specs ...models.SessionSpec) []int64 {
	t.Helper()

	ids, err := svc.Seed(context.Background(), specs)
	require.NoError(t, err)
	require.Len(t, ids, len(specs))

	return ids
}

func seats(t *testing.T, db *storage.DB, sessionID int64, shift models.Shift) int {
	t.Helper()

	n, err := ledger.New(db.DB).Remaining(context.Background(), sessionID, shift)
	require.NoError(t, err)

	return n
}

func countRows(t *testing.T, db *storage.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table))

	return n
}

func enrollmentsOf(t *testing.T, db *storage.DB, email string) []models.Enrollment {
	t.Helper()

	ctx := context.Background()
	reg, err := db.Entities().RegistrantByEmail(ctx, email)
	require.NoError(t, err)

	enrollments, err := db.Entities().EnrollmentsByRegistrant(ctx, reg.ID)
	require.NoError(t, err)

	return enrollments
}

func requireConsistent(t *testing.T, svc *Service) {
	t.Helper()

	violations, err := svc.Audit(context.Background())
	require.NoError(t, err)
	require.Empty(t, violations)
}
