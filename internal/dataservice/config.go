// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dataservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"datcloude/internal/models"
)

// DefaultConfig is the record served when neither the bridge nor the local
// cache has anything.
func DefaultConfig() models.SiteConfig {
	return models.DefaultSiteConfig()
}

// mergeConfig overlays the top-level keys of raw onto DefaultConfig. Null
// keys and keys whose value does not fit the field keep the default; nested
// objects replace the default whole rather than merging into it.
func mergeConfig(raw []byte) (models.SiteConfig, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return DefaultConfig(), nil
	}

	var remote map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &remote); err != nil {
		return models.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}

	base, err := json.Marshal(DefaultConfig())
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("encode default config: %w", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return models.SiteConfig{}, fmt.Errorf("decode default config: %w", err)
	}

	keys := make([]string, 0, len(remote))
	for key := range remote {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := remote[key]
		if bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			continue
		}
		if _, known := merged[key]; !known {
			continue
		}
		if !fits(key, val) {
			continue
		}
		merged[key] = val
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("encode merged config: %w", err)
	}
	var cfg models.SiteConfig
	if err := json.Unmarshal(out, &cfg); err != nil {
		return models.SiteConfig{}, fmt.Errorf("decode merged config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// fits reports whether val decodes into the SiteConfig field named key.
func fits(key string, val json.RawMessage) bool {
	probe, err := json.Marshal(map[string]json.RawMessage{key: val})
	if err != nil {
		return false
	}
	var cfg models.SiteConfig
	return json.Unmarshal(probe, &cfg) == nil
}
