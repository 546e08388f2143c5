// internal/landing/handler.go
//
// Public render path for published landing pages.
//
// Context
// -------
// `GET /_landing/{slug}` is an internal route: visitors never type it.
// The tenant-routing middleware rewrites custom-domain requests here, and
// the platform's own page previews link to it.  The stored page HTML was
// produced by the (out-of-scope) builder and is trusted; it is emitted
// into the shell unescaped.

package landing

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var shell = template.Must(template.New("landing").Parse(`<!doctype html>
<html lang="pt-br">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type shellData struct {
	Title string
	Body  template.HTML
}

// Handler serves the slug-keyed render path.
type Handler struct {
	db *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler { return &Handler{db: db} }

// Render handles GET /_landing/{slug}.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	p, err := BySlug(r.Context(), h.db, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		zap.S().Errorw("landing page lookup failed", "slug", slug, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := shell.Execute(w, shellData{
		Title: p.Title,
		Body:  template.HTML(p.HTML),
	}); err != nil {
		zap.S().Errorw("landing page render failed", "slug", slug, "err", err)
	}
}
