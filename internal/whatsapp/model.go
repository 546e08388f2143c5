package whatsapp

import "time"

// Config mirrors one row in the `whatsapp_config` table: the per-workspace
// widget settings.  One row per workspace; mutated only by authenticated
// operators through the dashboard, read publicly by the widget endpoint.
type Config struct {
	ID          uint64    `db:"id" json:"-"`
	WorkspaceID string    `db:"workspace_id" json:"workspace_id"`
	Phone       string    `db:"phone" json:"phone"`
	// Template carries {{name}} and {{email}} placeholder tokens resolved
	// against the captured lead at deep-link build time.
	Template    string    `db:"message_template" json:"message_template"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	ButtonColor string    `db:"button_color" json:"button_color"`
	Position    string    `db:"position" json:"position"`
	Greeting    string    `db:"greeting" json:"greeting"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}
