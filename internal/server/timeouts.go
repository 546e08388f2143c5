// internal/server/timeouts.go
//
// http.Server construction with hardened timeouts.
//
// The public intake surface takes anonymous traffic from arbitrary
// origins, so the listener must not tolerate slow clients:
//
//   • ReadHeaderTimeout – drop slow-loris header dribble early (5 s)
//   • ReadTimeout       – cap the whole request read (10 s)
//   • WriteTimeout      – cap the whole response write (15 s)
//   • IdleTimeout       – recycle idle keep-alive connections (60 s)

package server

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// New returns an *http.Server for addr with the package's timeout
// defaults applied.  Callers may still adjust fields (TLSConfig,
// ErrorLog) before serving.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
