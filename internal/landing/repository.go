package landing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no published page matches the lookup.
var ErrNotFound = errors.New("landing page not found")

const columns = `id, workspace_id, slug, custom_domain, published,
               title, html, created_at, updated_at`

// BySlug fetches a published page by its unique slug.
func BySlug(ctx context.Context, db *sqlx.DB, slug string) (*Page, error) {
	const q = `
        SELECT ` + columns + `
        FROM   landing_page
        WHERE  slug = ?
          AND  published = 1
        LIMIT  1`
	var p Page
	if err := db.GetContext(ctx, &p, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ByCustomDomain fetches the published page bound to a custom hostname.
// Should more than one row ever match, the lowest id wins; ordering here
// keeps the pick deterministic instead of leaning on storage order.
func ByCustomDomain(ctx context.Context, db *sqlx.DB, host string) (*Page, error) {
	const q = `
        SELECT ` + columns + `
        FROM   landing_page
        WHERE  custom_domain = ?
          AND  published = 1
        ORDER  BY id ASC
        LIMIT  1`
	var p Page
	if err := db.GetContext(ctx, &p, q, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
