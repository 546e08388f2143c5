package lead

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Create inserts one lead row.  The caller supplies workspace scoping and
// a normalized email; Create fills the id and timestamp when absent and
// echoes them back on the record.
func Create(ctx context.Context, db *sqlx.DB, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Extra == nil {
		rec.Extra = Extra{}
	}

	const q = `
        INSERT INTO ` + "`lead`" + `
               (id, workspace_id, email, name, phone,
                page_url, source_type, extra_fields, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, q,
		rec.ID, rec.WorkspaceID, rec.Email, rec.Name, rec.Phone,
		rec.PageURL, rec.SourceType, rec.Extra, rec.CreatedAt)
	return err
}

// ByWorkspace returns the newest leads for one workspace, capped at
// limit.  Used by admin tooling and tests, not by the public intake path.
func ByWorkspace(ctx context.Context, db *sqlx.DB, workspaceID string, limit int) ([]Record, error) {
	const q = `
        SELECT id, workspace_id, email, name, phone,
               page_url, source_type, extra_fields, created_at
        FROM   ` + "`lead`" + `
        WHERE  workspace_id = ?
        ORDER  BY created_at DESC
        LIMIT  ?`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q, workspaceID, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
