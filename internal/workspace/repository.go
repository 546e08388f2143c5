package workspace

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// CountActive returns how many workspaces are neither suspended nor
// deleted.  Logged at boot as an early sanity check on the DB wiring.
func CountActive(ctx context.Context, db *sqlx.DB) (int, error) {
	const q = `
        SELECT COUNT(*) FROM workspace
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL`
	var n int
	if err := db.GetContext(ctx, &n, q); err != nil {
		return 0, err
	}
	return n, nil
}

// ByID fetches a single workspace row that is not suspended or deleted.
func ByID(ctx context.Context, db *sqlx.DB, id string) (*Record, error) {
	const q = `
        SELECT id, name, suspended_at, deleted_at, created_at, updated_at
        FROM   workspace
        WHERE  id = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}
