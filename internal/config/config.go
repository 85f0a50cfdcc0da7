// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes for the bridge.
const (
	// AuthStrict requires a server-verified session for admin actions.
	AuthStrict = "strict"
	// AuthLegacy leaves admin actions open to anonymous callers.
	AuthLegacy = "legacy"
)

// DefaultStudioEmail is the address that receives the admin role on
// registration and new-lead notifications.
const DefaultStudioEmail = "datcloud20@gmail.com"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache + session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Bridge behaviour
	StudioEmail    string
	AuthMode       string
	SessionSecret  string
	SessionTTL     time.Duration
	CacheTTL       time.Duration
	RateLimit      int
	RateLimitEvery time.Duration

	// TrustedProxies are the reverse proxies whose X-Forwarded-For the
	// rate limiter believes. Empty trusts no forwarding header.
	TrustedProxies []netip.Prefix

	// S3-compatible media storage (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Resend e-mail notifications (optional)
	ResendAPIKey string
	MailFrom     string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first if present; real environment variables take precedence.
// Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "datcloude"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "datcloude"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		StudioEmail:    strings.ToLower(envOrDefault("STUDIO_EMAIL", DefaultStudioEmail)),
		AuthMode:       strings.ToLower(envOrDefault("AUTH_MODE", AuthStrict)),
		SessionSecret:  envOrDefault("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:     durationOrDefault("SESSION_TTL", 24*time.Hour),
		CacheTTL:       durationOrDefault("BRIDGE_CACHE_TTL", 30*time.Second),
		RateLimit:      intOrDefault("RATE_LIMIT", 10),
		RateLimitEvery: durationOrDefault("RATE_LIMIT_WINDOW", time.Minute),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "datcloude-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     envOrDefault("MAIL_FROM", "DAT CLOUDE <noreply@datcloude.com>"),
	}

	proxies, err := parsePrefixes(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	if cfg.AuthMode != AuthStrict && cfg.AuthMode != AuthLegacy {
		return nil, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthStrict, AuthLegacy, cfg.AuthMode)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.SessionSecret == "dev-session-secret" {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StrictAuth reports whether admin actions require a verified session.
func (c *Config) StrictAuth() bool {
	return c.AuthMode == AuthStrict
}

// HasStorage reports whether S3 media storage is configured.
func (c *Config) HasStorage() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

// parsePrefixes reads a comma-separated list of IPs and CIDR ranges. A bare
// IP becomes a single-address prefix.
func parsePrefixes(list string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", item, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", item, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// durationOrDefault accepts Go durations ("30s") or bare seconds ("30").
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
	return fallback
}
