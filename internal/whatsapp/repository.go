package whatsapp

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a workspace has no WhatsApp configuration.
var ErrNotFound = errors.New("whatsapp config not found")

// ConfigByWorkspace fetches the single configuration row for one
// workspace.  The caller supplies a context so the lookup respects
// request deadlines.
func ConfigByWorkspace(ctx context.Context, db *sqlx.DB, workspaceID string) (*Config, error) {
	const q = `
        SELECT id, workspace_id, phone, message_template, is_active,
               button_color, position, greeting, created_at, updated_at
        FROM   whatsapp_config
        WHERE  workspace_id = ?
        LIMIT  1`
	var cfg Config
	if err := db.GetContext(ctx, &cfg, q, workspaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}
