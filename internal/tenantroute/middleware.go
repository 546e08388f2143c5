// internal/tenantroute/middleware.go
//
// Hostname-based dispatch between the platform and tenant custom domains.
//
/*
Context
--------
Converta serves two audiences from one listener: the platform's own
dashboard and API on the root domain, and each tenant's published landing
page on the tenant's custom domain.  This middleware classifies every
request by hostname:

  • main-domain (root domain or subdomain, preview domain, loopback) –
    passes through untouched to the platform handler chain.
  • custom-domain, path "/"      – server-side rewrite to the internal
    /_landing/{slug} render path; the browser URL never changes.
  • custom-domain, any other path – 302 redirect to "/".  A custom domain
    serves exactly one page; dashboard and auth routes are unreachable
    through it, which is the tenant-isolation boundary.
  • custom-domain, no match      – 404.

Workflow
--------
  1. cmd/web builds the Cache and wires Middleware(...) ahead of the
     platform router.
  2. Hostname() prefers X-Forwarded-Host (first value of a proxy chain),
     strips the port, and lowercases.

Notes
-----
  • Classification is pure string work; only the custom-domain branch
    touches storage, so main-domain traffic never queries landing pages.
*/

package tenantroute

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/converta/converta/internal/landing"
	"github.com/converta/converta/internal/metrics"
)

// PageResolver is the minimal contract the middleware needs.  Defined
// here so tests can inject a stub without constructing the full Cache.
type PageResolver interface {
	Resolve(ctx context.Context, host string) (*landing.Page, error)
}

// Platform carries the hostnames classified as platform traffic.
type Platform struct {
	RootDomain    string // "converta.app"
	PreviewDomain string // "converta.vercel.app", optional
}

// Hostname extracts the effective hostname: X-Forwarded-Host wins over
// Host, the first entry of a comma-separated proxy chain is used, any
// :port suffix is stripped, and the result is lowercased.
func Hostname(r *http.Request) string {
	h := r.Header.Get("X-Forwarded-Host")
	if h == "" {
		h = r.Host
	}
	if i := strings.IndexByte(h, ','); i != -1 {
		h = h[:i]
	}
	h = strings.TrimSpace(h)
	h = stripPort(h)
	return strings.ToLower(h)
}

// IsPlatformHost reports whether host belongs to the platform itself.
func (p Platform) IsPlatformHost(host string) bool {
	if host == "" {
		return true // header-less clients stay on the platform chain
	}
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}
	if host == p.RootDomain || strings.HasSuffix(host, "."+p.RootDomain) {
		return true
	}
	if p.PreviewDomain != "" &&
		(host == p.PreviewDomain || strings.HasSuffix(host, "."+p.PreviewDomain)) {
		return true
	}
	return false
}

// Middleware returns the hostname dispatcher.  next is the platform
// handler chain (dashboard, public API, session handling).
func Middleware(p Platform, resolver PageResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := Hostname(r)

			if p.IsPlatformHost(host) {
				next.ServeHTTP(w, r)
				return
			}

			page, err := resolver.Resolve(r.Context(), host)
			if err != nil {
				if errors.Is(err, landing.ErrNotFound) {
					metrics.DomainMissesTotal.Inc()
					http.NotFound(w, r)
					return
				}
				zap.S().Errorw("custom-domain lookup failed", "host", host, "err", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if r.URL.Path != "/" {
				// One domain, one page.  Everything else bounces home.
				metrics.DomainRedirectsTotal.Inc()
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			target := "/_landing/" + page.Slug
			r.URL.Path = target
			r.RequestURI = target
			metrics.DomainRewritesTotal.Inc()
			zap.S().Debugw("custom-domain rewrite",
				"host", host, "slug", page.Slug)
			next.ServeHTTP(w, r)
		})
	}
}

// stripPort removes the :port suffix from Host when present.  IPv6
// literals keep their brackets' content intact.
func stripPort(h string) string {
	if strings.HasPrefix(h, "[") {
		if i := strings.IndexByte(h, ']'); i != -1 {
			return h[1:i]
		}
		return h
	}
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
