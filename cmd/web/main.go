// cmd/web/main.go
//
// BrightPath lead funnel – HTTP entry point.
//
// Startup life-cycle
// ------------------
//
//  1. Load env vars (system-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Optionally connect Vault and register it as the config secret
//     resolver, then load the typed configuration.
//
//  4. Optionally open the GeoIP city database for request enrichment.
//
//  5. Build the router: recovery → request-info enrichment → tracking
//     capture → security headers, then every registered component plus
//     the Prometheus /metrics endpoint, all wrapped in ForceHTTPS.
//
//  6. Serve with hardened timeouts; SIGINT/SIGTERM drain gracefully.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/BrightPathCover/leadfunnel/internal/component"
	"github.com/BrightPathCover/leadfunnel/internal/config"
	"github.com/BrightPathCover/leadfunnel/internal/logger"
	"github.com/BrightPathCover/leadfunnel/internal/middleware"
	"github.com/BrightPathCover/leadfunnel/internal/requestinfo"
	"github.com/BrightPathCover/leadfunnel/internal/server"
	"github.com/BrightPathCover/leadfunnel/internal/tracking"
	"github.com/BrightPathCover/leadfunnel/internal/vault"

	_ "github.com/BrightPathCover/leadfunnel/components/lead"
	_ "github.com/BrightPathCover/leadfunnel/components/thankyou"
)

const serverEnvPath = "/usr/local/etc/leadfunnel/global.env"

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
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

// deps satisfies component.Deps for Init-time wiring.
type deps struct {
	vault *vault.Client
}

func (d *deps) GetConfig() *config.Config { return config.Get() }
func (d *deps) GetVault() *vault.Client   { return d.vault }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Logger ──────────────────────────────────────────────────────
	//
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 2.  Vault (optional) + configuration ───────────────────────────
	//
	var vc *vault.Client
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err = vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalw("connect vault", "error", err)
		}
		config.SetSecretResolver(vc)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalw("load config", "error", err)
	}

	//
	// ── 3.  GeoIP enrichment (optional) ─────────────────────────────────
	//
	if cfg.Geo.CityDB != "" {
		if err := requestinfo.InitGeo(cfg.Geo.CityDB); err != nil {
			logOut.Warnw("geoip unavailable", "db", cfg.Geo.CityDB, "error", err)
		}
	}

	//
	// ── 4.  Router: middleware chain, components, metrics ───────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Recover)
	r.Use(requestinfo.Enrich)
	r.Use(tracking.Capture)
	r.Use(middleware.Security)

	d := &deps{vault: vc}
	for _, c := range component.All() {
		if ini, ok := c.(component.Initializer); ok {
			if err := ini.Init(d); err != nil {
				logOut.Fatalw("init component", "component", c.Name(), "error", err)
			}
		}
		c.Routes(r)
		logOut.Infow("component mounted", "component", c.Name())
	}
	r.Handle("/metrics", promhttp.Handler())

	handler := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, r)

	//
	// ── 5.  Serve with graceful drain ───────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logOut.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalw("server exited", "error", err)
	}
	logOut.Infow("goodbye")
}
