// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the DAT CLOUDE bridge server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datcloude/internal/cache"
	"datcloude/internal/config"
	"datcloude/internal/database"
	"datcloude/internal/handlers"
	"datcloude/internal/middleware"
	"datcloude/internal/notify"
	"datcloude/internal/router"
	"datcloude/internal/session"
	"datcloude/internal/storage"
	"datcloude/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"auth_mode", cfg.AuthMode,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the default site config and admin account in development.
	if cfg.IsDev() {
		if err := database.Seed(db, cfg.StudioEmail); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + bridge response cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Sessions live in Valkey; clients hold a signed token naming them.
	// Outside development the cookie copy is marked Secure.
	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL)
	issuer := session.NewIssuer(cfg.SessionSecret, sessionStore.TTL(), !cfg.IsDev())
	sessions := session.NewManager(sessionStore, issuer)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitEvery)
	limiter.TrustProxies(cfg.TrustedProxies...)
	defer limiter.Stop()

	bridgeCfg := handlers.Config{
		Users:       store.NewUserStore(db),
		Site:        store.NewSiteConfigStore(db),
		Projects:    store.NewProjectStore(db),
		Messages:    store.NewMessageStore(db),
		Sessions:    sessions,
		Cache:       cache.NewResponseCache(valkeyClient, cfg.CacheTTL),
		Limiter:     limiter,
		StudioEmail: cfg.StudioEmail,
		Strict:      cfg.StrictAuth(),
	}

	// S3-compatible media storage is optional; upload_media answers 503
	// without it.
	if cfg.HasStorage() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			bridgeCfg.Media = storageClient
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		}
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// New-lead e-mails are optional as well.
	notifier := notify.New(cfg.ResendAPIKey, cfg.MailFrom, cfg.StudioEmail)
	if notifier != nil {
		bridgeCfg.Notifier = notifier
		defer notifier.Wait()
	} else {
		slog.Warn("resend not configured, lead notifications disabled")
	}

	bridge := handlers.New(bridgeCfg)
	slog.Info("bridge ready", "actions", bridge.Actions(), "strict", bridgeCfg.Strict)

	r := router.New(bridge, sessions, map[string]router.HealthCheck{
		"postgres": db.PingContext,
		"valkey": func(ctx context.Context) error {
			return valkeyClient.Ping(ctx).Err()
		},
	})

	// Uploads carry data-URIs of up to 25MB, so reads get more room than
	// the other timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
