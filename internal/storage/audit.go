package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SessionUsage compares what a session's counters say was consumed with the
// enrollments that actually exist for it.
type SessionUsage struct {
	SessionID int64 `db:"session_id"`
	Seats1    int   `db:"seats_shift1"`
	Seats2    int   `db:"seats_shift2"`
	Consumed1 int   `db:"consumed_shift1"`
	Consumed2 int   `db:"consumed_shift2"`
	Enrolled1 int   `db:"enrolled_shift1"`
	Enrolled2 int   `db:"enrolled_shift2"`
}

type PairCount struct {
	RegistrantID int64 `db:"registrant_id"`
	SessionID    int64 `db:"session_id"`
	Count        int   `db:"n"`
}

type RegistrantCount struct {
	RegistrantID int64 `db:"registrant_id"`
	Count        int   `db:"n"`
}

func (e *Entities) SessionUsage(ctx context.Context) ([]SessionUsage, error) {
	query := `
		SELECT
			s.id AS session_id,
			s.seats_shift1 AS seats_shift1,
			s.seats_shift2 AS seats_shift2,
			s.capacity_shift1 - s.seats_shift1 AS consumed_shift1,
			s.capacity_shift2 - s.seats_shift2 AS consumed_shift2,
			(SELECT COUNT(*) FROM enrollments e WHERE e.session_id = s.id AND e.shift = 'turno1') AS enrolled_shift1,
			(SELECT COUNT(*) FROM enrollments e WHERE e.session_id = s.id AND e.shift = 'turno2') AS enrolled_shift2
		FROM sessions s
		ORDER BY s.id`

	var usage []SessionUsage
	if err := sqlx.SelectContext(ctx, e.q, &usage, query); err != nil {
		return nil, fmt.Errorf("failed to read session usage: %w", err)
	}

	return usage, nil
}

func (e *Entities) DuplicateEnrollments(ctx context.Context) ([]PairCount, error) {
	query := `
		SELECT registrant_id, session_id, COUNT(*) AS n
		FROM enrollments
		GROUP BY registrant_id, session_id
		HAVING COUNT(*) > 1`

	var pairs []PairCount
	if err := sqlx.SelectContext(ctx, e.q, &pairs, query); err != nil {
		return nil, fmt.Errorf("failed to read duplicate enrollments: %w", err)
	}

	return pairs, nil
}

// OrphanEnrollments returns ids of enrollments whose registrant or session
// no longer exists.
func (e *Entities) OrphanEnrollments(ctx context.Context) ([]int64, error) {
	query := `
		SELECT e.id
		FROM enrollments e
		LEFT JOIN registrants r ON r.id = e.registrant_id
		LEFT JOIN sessions s ON s.id = e.session_id
		WHERE r.id IS NULL OR s.id IS NULL
		ORDER BY e.id`

	var ids []int64
	if err := sqlx.SelectContext(ctx, e.q, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to read orphan enrollments: %w", err)
	}

	return ids, nil
}

func (e *Entities) RegistrantsWithSeveralEnrollments(ctx context.Context) ([]RegistrantCount, error) {
	query := `
		SELECT registrant_id, COUNT(*) AS n
		FROM enrollments
		GROUP BY registrant_id
		HAVING COUNT(*) > 1`

	var counts []RegistrantCount
	if err := sqlx.SelectContext(ctx, e.q, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to read registrant enrollment counts: %w", err)
	}

	return counts, nil
}
