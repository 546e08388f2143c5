// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   • Strict-Transport-Security  –  forces HTTPS (2 years + preload)
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP — anything written after the
//   handler calls WriteHeader never reaches the wire.  Handlers may still
//   overwrite a value they own.
// • No Content-Security-Policy or X-Frame-Options here: hosted landing
//   pages carry arbitrary customer markup, and the embed script must run
//   inside third-party origins.  A policy strict enough to matter would
//   break both surfaces.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts  = "max-age=63072000; includeSubDomains; preload"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", hsts)
		w.Header().Set("X-Content-Type-Options", nosn)
		w.Header().Set("Referrer-Policy", refer)

		next.ServeHTTP(w, r)
	})
}
