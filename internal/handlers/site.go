// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"datcloude/internal/cache"
	"datcloude/internal/models"
)

// getConfig returns the stored site configuration, or {} when none exists.
func (b *Bridge) getConfig(w http.ResponseWriter, r *http.Request) {
	body, gen, ok := b.cached(r, cache.ConfigKey)
	if ok {
		writeRaw(w, body)
		return
	}

	cfg, err := b.cfg.Site.Get(r.Context())
	if err != nil {
		slog.Error("get config failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load configuration.")
		return
	}

	var out any = struct{}{}
	if cfg != nil {
		out = cfg
	}
	b.respondCached(w, r, cache.ConfigKey, gen, out)
}

// updateConfig replaces the whole configuration record. Fields absent from
// the payload take the write defaults, not their previous values.
func (b *Bridge) updateConfig(w http.ResponseWriter, r *http.Request) {
	cfg := models.SiteConfigWriteDefaults(b.cfg.StudioEmail)
	if err := decodeBody(r, &cfg); err != nil {
		badBody(w, err)
		return
	}
	cfg.Normalize()

	if err := b.cfg.Site.Replace(r.Context(), &cfg); err != nil {
		slog.Error("update config failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save configuration.")
		return
	}
	b.invalidate(r, cache.ConfigKey)

	slog.Info("site config updated")
	writeSuccess(w)
}

// cached looks up a response body when a cache is configured. The returned
// generation must be read before the database so a concurrent write cannot
// be masked by the body loaded here.
func (b *Bridge) cached(r *http.Request, key string) ([]byte, cache.Generation, bool) {
	if b.cfg.Cache == nil {
		return nil, cache.NoGeneration, false
	}
	return b.cfg.Cache.Get(r.Context(), key)
}

// respondCached encodes v, stores it under key for gen and writes it.
func (b *Bridge) respondCached(w http.ResponseWriter, r *http.Request, key string, gen cache.Generation, v any) {
	body, err := encode(v)
	if err != nil {
		slog.Error("encode response failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if b.cfg.Cache != nil {
		b.cfg.Cache.Set(r.Context(), key, gen, body)
	}
	writeRaw(w, body)
}

func (b *Bridge) invalidate(r *http.Request, keys ...string) {
	if b.cfg.Cache != nil {
		b.cfg.Cache.Invalidate(r.Context(), keys...)
	}
}
