package landing

import "time"

// Page mirrors one row in the `landing_page` table.  A page becomes
// publicly reachable once Published is set; CustomDomain, when non-NULL,
// binds the page to a tenant-owned hostname served by the routing
// middleware.  Uniqueness of slug and custom_domain is enforced by the
// schema; the lookup helpers still order deterministically in case an
// upstream migration ever relaxes it.
type Page struct {
	ID           uint64    `db:"id"`
	WorkspaceID  string    `db:"workspace_id"`
	Slug         string    `db:"slug"`
	CustomDomain *string   `db:"custom_domain"`
	Published    bool      `db:"published"`
	Title        string    `db:"title"`
	HTML         string    `db:"html"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
