// cmd/web/router.go
//
// HTTP surface assembly.
//
// Two route families share one listener:
//
//   • Platform routes – the capture API, widget config, the embed
//     script, rendered landing pages, metrics, and health.  Reached on
//     the platform's own hostnames.
//
//   • Tenant custom domains – any other hostname.  The tenantroute
//     middleware resolves the domain to a published landing page and
//     rewrites the request to /_landing/{slug} before chi matches.
//
// The capture endpoints are embedded on third-party origins, so the
// public group is wrapped in a wildcard CORS policy.  OPTIONS routes are
// declared explicitly (cors runs with OptionsPassthrough) so preflights
// answer a deterministic 204.

package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/converta/converta/internal/agent"
	"github.com/converta/converta/internal/capture"
	"github.com/converta/converta/internal/config"
	"github.com/converta/converta/internal/landing"
	"github.com/converta/converta/internal/requestinfo"
	"github.com/converta/converta/internal/tenantroute"
	"github.com/converta/converta/internal/widget"
)

// newRouter wires every handler onto one chi mux.
func newRouter(cfg *config.Config, db *sqlx.DB) (http.Handler, error) {
	agentHandler, err := agent.NewHandler()
	if err != nil {
		return nil, err
	}

	captureHandler := capture.NewHandler(db)
	landingHandler := landing.NewHandler(db)

	widgetTTL := 60 * time.Second
	if cfg.Redis.TTL > 0 {
		widgetTTL = time.Duration(cfg.Redis.TTL) * time.Second
	}
	widgetHandler := widget.NewHandler(db, widget.NewCache(cfg.Redis.Addr, widgetTTL))

	domains := tenantroute.New(db, tenantroute.IdleTTL, tenantroute.MaxEntries)
	platform := tenantroute.Platform{
		RootDomain:    cfg.Platform.RootDomain,
		PreviewDomain: cfg.Platform.PreviewDomain,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(tenantroute.Middleware(platform, domains))

	// Public cross-origin surface.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:     []string{"*"},
			AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:     []string{"Accept", "Content-Type"},
			AllowCredentials:   false,
			MaxAge:             300,
			OptionsPassthrough: true,
		}))
		r.Use(requestinfo.Enrich)

		r.Post("/leads/capture", captureHandler.Capture)
		r.Options("/leads/capture", captureHandler.Preflight)
		r.Post("/leads/whatsapp", captureHandler.WhatsApp)
		r.Options("/leads/whatsapp", captureHandler.Preflight)

		r.Get("/widgets/whatsapp", widgetHandler.WhatsAppConfig)
		r.Options("/widgets/whatsapp", captureHandler.Preflight)
		r.Get("/embed/capture.js", agentHandler.Serve)
	})

	// Custom-domain rewrites land here.
	r.Get("/_landing/{slug}", landingHandler.Render)

	// Operational surface.
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return r, nil
}
