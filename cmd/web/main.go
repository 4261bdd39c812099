// cmd/web/main.go
//
// Doofinder WP endpoint service – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Bootstrap console logger, then load configuration.
//
//  2. Start rotating file logger (tees to console when configured).
//
//  3. Open the site database (options, users, and role tables).
//
//  4. Build the option store: SQL or Vault, behind a TTL cache.  On the SQL
//     backend the Doofinder token is generated on first boot.
//
//  5. Build the REST server (ACL authorizer) and the shared-secret gate.
//
//  6. Run endpoint discovery once.  Any handler failure is fatal.
//
//  7. Install the permission bypass for the discovered routes.
//
//  8. Mount /metrics and the REST server, wrap with security headers,
//     Basic auth, and optional HTTPS redirect, then serve until SIGINT or
//     SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/doofinder-wp/internal/acl"
	"github.com/yanizio/doofinder-wp/internal/auth"
	"github.com/yanizio/doofinder-wp/internal/config"
	"github.com/yanizio/doofinder-wp/internal/database"
	"github.com/yanizio/doofinder-wp/internal/endpoint"
	"github.com/yanizio/doofinder-wp/internal/gate"
	"github.com/yanizio/doofinder-wp/internal/logger"
	"github.com/yanizio/doofinder-wp/internal/middleware"
	"github.com/yanizio/doofinder-wp/internal/options"
	"github.com/yanizio/doofinder-wp/internal/rest"
	"github.com/yanizio/doofinder-wp/internal/secret"
	"github.com/yanizio/doofinder-wp/internal/server"
	"github.com/yanizio/doofinder-wp/internal/vault"

	_ "github.com/yanizio/doofinder-wp/endpoints/health"
	_ "github.com/yanizio/doofinder-wp/endpoints/settings"
)

// optionCacheSize bounds the option cache; the service reads a handful of
// keys.
const optionCacheSize = 64

func main() {
	boot := logger.Bootstrap()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatalw("load config", "err", err)
	}

	log, err := logger.New(logger.Options{Dir: cfg.LogDir(), Console: cfg.Log.Console})
	if err != nil {
		boot.Fatalw("start logger", "err", err)
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 1.  Site DB ─────────────────────────────────────────────────────
	//
	dbOpts := database.DefaultOptions()
	dbOpts.MaxOpen, dbOpts.MaxIdle = cfg.Database.MaxOpen, cfg.Database.MaxIdle
	db, err := database.OpenWithOptions(ctx, cfg.Database.DSN, dbOpts)
	if err != nil {
		log.Fatalw("connect site DB", "err", err)
	}
	defer db.Close()
	log.Infow("site DB online")

	//
	// ── 2.  Option store ────────────────────────────────────────────────
	//
	var backend options.Store
	switch cfg.Secret.Backend {
	case "vault":
		vc, err := vault.New(ctx, log)
		if err != nil {
			log.Fatalw("vault client", "err", err)
		}
		backend = options.NewVaultStore(vc, cfg.Secret.VaultPath, cfg.Secret.CacheTTL)
	default:
		backend = options.NewSQLStore(db)
	}
	store := options.NewCached(backend, cfg.Secret.CacheTTL, optionCacheSize)

	if _, created, err := options.EnsureToken(ctx, store, cfg.Secret.OptionKey); err != nil {
		// Read-only backends are provisioned out of band; the gate fails
		// closed until they are.
		log.Warnw("secure token not ensured", "backend", cfg.Secret.Backend, "err", err)
	} else if created {
		log.Infow("secure token generated", "option", cfg.Secret.OptionKey)
	}

	//
	// ── 3.  REST server, gate, discovery ────────────────────────────────
	//
	api := rest.NewServer(acl.Authorizer{DB: db})
	guard := secret.New(store,
		secret.WithHeader(cfg.Secret.Header),
		secret.WithOptionKey(cfg.Secret.OptionKey),
		secret.WithLogger(log),
	)

	routes, err := endpoint.NewEngine(endpoint.Default(), api,
		endpoint.WithOptions(store),
		endpoint.WithGuard(guard),
		endpoint.WithDisabled(cfg.Endpoints.Disabled...),
		endpoint.WithLogger(log),
	).Initialize(ctx)
	if err != nil {
		log.Fatalw("endpoint discovery", "err", err)
	}
	gate.NewBypass(routes).Install(api)

	//
	// ── 4.  Root router ─────────────────────────────────────────────────
	//
	root := chi.NewRouter()
	root.Use(chimw.RequestID, chimw.Recoverer, middleware.Security)
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/*", auth.Basic(acl.Users{DB: db}, auth.IsErr(acl.ErrBadCredentials))(api))

	srv := server.New(cfg.HTTP.ListenAddr, middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, root))
	if err := server.Run(ctx, srv); err != nil {
		log.Fatalw("http server", "err", err)
	}
	log.Infow("stopped")
}
