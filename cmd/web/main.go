// cmd/web/main.go
//
// Converta – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (system-wide file → conf/.env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load YAML + env configuration and resolve Vault secret references.
//
//  4. Open MySQL and log the active-workspace count as a sanity check.
//
//  5. Open the GeoLite2 database when configured (lead geo annotation).
//
//  6. Assemble the router: tenant-domain middleware → public capture
//     surface → landing render → metrics/health.
//
//  7. Optionally wrap with ForceHTTPS, then serve with hardened
//     timeouts until SIGINT/SIGTERM.
//
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/converta/converta/internal/config"
	"github.com/converta/converta/internal/database"
	"github.com/converta/converta/internal/logger"
	"github.com/converta/converta/internal/middleware"
	"github.com/converta/converta/internal/requestinfo"
	"github.com/converta/converta/internal/server"
	"github.com/converta/converta/internal/vault"
	"github.com/converta/converta/internal/workspace"
)

const serverEnvPath = "/usr/local/etc/converta/global.env"

// loadEnv prefers the system-wide env file; on dev it falls back to
// conf/.env via the config loader.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Secrets ─────────────────────────────────────────────────────
	//
	dbPassword := cfg.Database.Password
	if vault.IsRef(dbPassword) {
		vc, err := vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalw("vault connect", "err", err)
		}
		dbPassword, err = vc.Resolve(ctx, dbPassword)
		if err != nil {
			logOut.Fatalw("resolve database password", "err", err)
		}
	}

	//
	// ── 2.  Database ────────────────────────────────────────────────────
	//
	logOut.Info("connecting to MySQL …")
	db, err := database.Open(ctx, database.BuildDSN(cfg.Database.DSN, dbPassword))
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	logOut.Info("database online")

	if active, err := workspace.CountActive(ctx, db); err == nil {
		logOut.Infof("%d active workspace(s) found", active)
	}

	//
	// ── 3.  Geo database (optional) ─────────────────────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo database unavailable, leads will lack geo metadata",
				"path", cfg.Geo.DBPath, "err", err)
		}
	}

	//
	// ── 4.  Router + server ─────────────────────────────────────────────
	//
	handler, err := newRouter(cfg, db)
	if err != nil {
		logOut.Fatalw("build router", "err", err)
	}
	handler = middleware.Security(handler)
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	srv := server.New(cfg.HTTP.ListenAddr, handler)

	go func() {
		logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	logOut.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorw("graceful shutdown", "err", err)
	}
}
