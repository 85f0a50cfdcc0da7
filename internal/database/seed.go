// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"datcloude/internal/models"
)

// Seed populates the database with initial development data: the default
// site configuration row and a studio admin account. Each part is skipped
// when data already exists.
func Seed(db *sql.DB, studioEmail string) error {
	if err := seedSiteConfig(db); err != nil {
		return err
	}
	return seedAdmin(db, studioEmail)
}

func seedSiteConfig(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM site_config").Scan(&count); err != nil {
		return fmt.Errorf("seed check site_config: %w", err)
	}
	if count > 0 {
		return nil
	}

	cfg := models.DefaultSiteConfig()
	stats, _ := json.Marshal(cfg.Stats)
	socials, _ := json.Marshal(cfg.Socials)
	tools, _ := json.Marshal(cfg.Tools)

	_, err := db.Exec(`
		INSERT INTO site_config (id, logo_text, logo_position, footer_description,
			hero_title, hero_subtitle, hero_video_opacity, hero_text_color,
			hero_text_position, hero_title_size, hero_image_size,
			stats, socials, tools, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING
	`, models.SiteConfigID, cfg.LogoText, cfg.LogoPosition, cfg.FooterDescription,
		cfg.HeroTitle, cfg.HeroSubtitle, cfg.HeroVideoOpacity, cfg.HeroTextColor,
		cfg.HeroTextPosition, cfg.HeroTitleSize, cfg.HeroImageSize,
		stats, socials, tools, cfg.ContactEmail)
	if err != nil {
		return fmt.Errorf("seed insert site_config: %w", err)
	}

	slog.Info("database seeded with default site configuration")
	return nil
}

func seedAdmin(db *sql.DB, studioEmail string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
	`, studioEmail, string(hash), "Studio Admin", models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", studioEmail,
		"password", "admin",
	)

	return nil
}
