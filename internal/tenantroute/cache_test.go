// internal/tenantroute/cache_test.go
//
// Cache behaviour: positive results are served from memory, negative
// results are retried against storage.

package tenantroute

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/converta/converta/internal/landing"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func pageRow(id int64, slug, domain string) *sqlmock.Rows {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "workspace_id", "slug", "custom_domain", "published",
		"title", "html", "created_at", "updated_at",
	}).AddRow(id, "w1", slug, domain, true, "T", "<p>x</p>", now, now)
}

func TestResolve_SecondHitServedFromCache(t *testing.T) {
	db, mock := newMockDB(t)
	c := New(db, IdleTTL, MaxEntries)

	mock.ExpectQuery("SELECT (.+) FROM   landing_page").
		WithArgs("promo.acme.com.br").
		WillReturnRows(pageRow(1, "promo", "promo.acme.com.br"))

	ctx := context.Background()
	p1, err := c.Resolve(ctx, "promo.acme.com.br")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	p2, err := c.Resolve(ctx, "promo.acme.com.br")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if p1 != p2 {
		t.Fatal("second Resolve did not return the cached page")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected exactly one query: %v", err)
	}
}

func TestResolve_NegativeResultNotCached(t *testing.T) {
	db, mock := newMockDB(t)
	c := New(db, IdleTTL, MaxEntries)

	mock.ExpectQuery("SELECT (.+) FROM   landing_page").
		WithArgs("new.acme.com.br").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM   landing_page").
		WithArgs("new.acme.com.br").
		WillReturnRows(pageRow(2, "fresh", "new.acme.com.br"))

	ctx := context.Background()
	if _, err := c.Resolve(ctx, "new.acme.com.br"); !errors.Is(err, landing.ErrNotFound) {
		t.Fatalf("first Resolve err = %v, want ErrNotFound", err)
	}

	// The domain was published between the two requests; the cache must
	// go back to storage rather than replay the miss.
	p, err := c.Resolve(ctx, "new.acme.com.br")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if p.Slug != "fresh" {
		t.Fatalf("slug = %q, want fresh", p.Slug)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
