// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command sitewatch follows a bridge the way an open browser tab does: it
// polls the site config, logs every change, and keeps a SQLite fallback
// cache so it still reports the last known config while the bridge is down.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"datcloude/internal/dataservice"
	"datcloude/internal/models"
)

func main() {
	endpoint := flag.String("endpoint", envOr("BRIDGE_URL", "http://localhost:8080/api.php"), "bridge endpoint URL")
	cachePath := flag.String("cache", defaultCachePath(), "SQLite fallback cache file")
	interval := flag.Duration("interval", dataservice.DefaultRefreshInterval, "config poll interval")
	timeout := flag.Duration("timeout", dataservice.DefaultTimeout, "per-request timeout")
	once := flag.Bool("once", false, "print the config and catalog once, then exit")
	jsonLogs := flag.Bool("json", false, "log as JSON")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	store, err := dataservice.OpenSQLiteStorage(*cachePath)
	if err != nil {
		slog.Error("failed to open fallback cache", "path", *cachePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := dataservice.NewService(*endpoint, store, dataservice.WithTimeout(*timeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		logConfig(svc, svc.GetConfig(ctx))
		logCatalog(ctx, svc)
		return
	}

	slog.Info("watching bridge", "endpoint", *endpoint, "interval", *interval, "cache", *cachePath)
	logCatalog(ctx, svc)

	refresher := dataservice.NewRefresher(svc, *interval, func(cfg models.SiteConfig) {
		logConfig(svc, cfg)
	})
	refresher.Start(ctx)
	<-ctx.Done()
	refresher.Stop()
	slog.Info("stopped")
}

func logConfig(svc *dataservice.Service, cfg models.SiteConfig) {
	slog.Info("site config",
		"logo", cfg.LogoText,
		"hero_title", cfg.HeroTitle,
		"hero_image", svc.TransformDriveURL(cfg.HeroImageURL),
		"contact", cfg.ContactEmail,
		"tools", len(cfg.Tools),
		"stats", cfg.Stats,
	)
}

func logCatalog(ctx context.Context, svc *dataservice.Service) {
	all := svc.GetProjects(ctx)
	featured := svc.GetFeaturedProjects(ctx)
	slog.Info("catalog", "projects", len(all), "featured", len(featured))
	for _, c := range models.Categories() {
		if n := len(svc.GetProjectsByCategory(ctx, c)); n > 0 {
			slog.Info("category", "name", c, "projects", n)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "datcloude", "sitewatch.db")
}
