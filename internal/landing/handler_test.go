// internal/landing/handler_test.go
//
// Render-path tests: slug route wired through chi, backed by sqlmock.

package landing

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/_landing/{slug}", h.Render)
	return r
}

func TestRender_PublishedPage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM   landing_page").
		WithArgs("promo").
		WillReturnRows(pageRows().AddRow(
			1, "w1", "promo", nil, true,
			"Promoção", "<h1>Oferta</h1>", sqlTime(), sqlTime()))

	req := httptest.NewRequest(http.MethodGet, "/_landing/promo", nil)
	rr := httptest.NewRecorder()
	newRouter(NewHandler(db)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<title>Promoção</title>") {
		t.Fatalf("title missing from body:\n%s", body)
	}
	if !strings.Contains(body, "<h1>Oferta</h1>") {
		t.Fatalf("page HTML not emitted unescaped:\n%s", body)
	}
}

func TestRender_UnknownSlugIs404(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM   landing_page").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/_landing/ghost", nil)
	rr := httptest.NewRecorder()
	newRouter(NewHandler(db)).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
