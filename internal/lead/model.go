package lead

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Source types recorded on captured leads.  The embed script's classic
// form path tags rows as legacy_form; the WhatsApp widget path uses
// whatsapp_widget.
const (
	SourceLegacyForm     = "legacy_form"
	SourceWhatsAppWidget = "whatsapp_widget"
)

// MetaKey is the reserved extra-fields key holding request metadata.
// Nesting metadata under one key guarantees it can never collide with a
// field the visitor actually submitted.
const MetaKey = "_meta"

// Record mirrors one row in the persistent `lead` table.  Every lead
// belongs to exactly one workspace; the email column is normalized
// (lowercase, trimmed) before insert.  WhatsApp-widget leads may carry an
// empty email because the phone number is their primary identifier.
type Record struct {
	ID          string    `db:"id"`
	WorkspaceID string    `db:"workspace_id"`
	Email       string    `db:"email"`
	Name        string    `db:"name"`
	Phone       string    `db:"phone"`
	PageURL     string    `db:"page_url"`
	SourceType  string    `db:"source_type"`
	Extra       Extra     `db:"extra_fields"`
	CreatedAt   time.Time `db:"created_at"`
}

// Extra is the open-ended key→value mapping persisted as a JSON column.
// Values are whatever the submitting form carried; repeated keys collapse
// into ordered []any slices (see Merge).
type Extra map[string]any

// Value implements driver.Valuer so sqlx can bind Extra into the JSON
// column.
func (e Extra) Value() (driver.Value, error) {
	if e == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner for reads.
func (e *Extra) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*e = Extra{}
		return nil
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return fmt.Errorf("lead: cannot scan %T into Extra", src)
	}
}
