package workspace

import "time"

// Record mirrors one row in the persistent `workspace` table.  The
// operational state is captured by two nullable timestamps:
//
//   - SuspendedAt – workspace is temporarily disabled (e.g., billing).
//   - DeletedAt   – workspace is permanently removed.
//
// Public intake trusts the client-supplied workspace id and does not
// consult this table on the hot path; the row exists for ownership and
// admin operations.
type Record struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
