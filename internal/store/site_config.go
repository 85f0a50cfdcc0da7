// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"datcloude/internal/models"
)

// SiteConfigStore manages the singleton site configuration row.
type SiteConfigStore struct {
	db *sql.DB
}

// NewSiteConfigStore returns a new SiteConfigStore backed by the given database.
func NewSiteConfigStore(db *sql.DB) *SiteConfigStore {
	return &SiteConfigStore{db: db}
}

// Get returns the stored configuration, or nil if the row has never been written.
func (s *SiteConfigStore) Get(ctx context.Context) (*models.SiteConfig, error) {
	var (
		c                     models.SiteConfig
		stats, socials, tools []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT logo_text, logo_image_url, logo_position, logo_x, logo_y,
		       footer_description, hero_title, hero_subtitle, hero_image_url,
		       hero_video_url, hero_video_opacity, hero_text_color,
		       hero_text_position, hero_title_size, hero_image_size,
		       hero_image_x, hero_image_y, stats, socials, tools,
		       contact_email, whatsapp_number
		FROM site_config WHERE id = $1
	`, models.SiteConfigID).Scan(
		&c.LogoText, &c.LogoImageURL, &c.LogoPosition, &c.LogoX, &c.LogoY,
		&c.FooterDescription, &c.HeroTitle, &c.HeroSubtitle, &c.HeroImageURL,
		&c.HeroVideoURL, &c.HeroVideoOpacity, &c.HeroTextColor,
		&c.HeroTextPosition, &c.HeroTitleSize, &c.HeroImageSize,
		&c.HeroImageX, &c.HeroImageY, &stats, &socials, &tools,
		&c.ContactEmail, &c.WhatsappNumber,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get site config: %w", err)
	}

	// Malformed JSON columns degrade to empty values, as they always have.
	if err := json.Unmarshal(stats, &c.Stats); err != nil {
		c.Stats = models.Stats{}
	}
	if err := json.Unmarshal(socials, &c.Socials); err != nil {
		c.Socials = nil
	}
	if err := json.Unmarshal(tools, &c.Tools); err != nil {
		c.Tools = nil
	}
	c.Normalize()
	return &c, nil
}

// Replace overwrites the whole configuration row, creating it if needed.
// Concurrent writers race and the last one wins.
func (s *SiteConfigStore) Replace(ctx context.Context, c *models.SiteConfig) error {
	c.Normalize()
	stats, err := json.Marshal(c.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	socials, err := json.Marshal(c.Socials)
	if err != nil {
		return fmt.Errorf("marshal socials: %w", err)
	}
	tools, err := json.Marshal(c.Tools)
	if err != nil {
		return fmt.Errorf("marshal tools: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO site_config (id,
			logo_text, logo_image_url, logo_position, logo_x, logo_y,
			footer_description, hero_title, hero_subtitle, hero_image_url,
			hero_video_url, hero_video_opacity, hero_text_color,
			hero_text_position, hero_title_size, hero_image_size,
			hero_image_x, hero_image_y, stats, socials, tools,
			contact_email, whatsapp_number, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW())
		ON CONFLICT (id) DO UPDATE SET
			logo_text = EXCLUDED.logo_text,
			logo_image_url = EXCLUDED.logo_image_url,
			logo_position = EXCLUDED.logo_position,
			logo_x = EXCLUDED.logo_x,
			logo_y = EXCLUDED.logo_y,
			footer_description = EXCLUDED.footer_description,
			hero_title = EXCLUDED.hero_title,
			hero_subtitle = EXCLUDED.hero_subtitle,
			hero_image_url = EXCLUDED.hero_image_url,
			hero_video_url = EXCLUDED.hero_video_url,
			hero_video_opacity = EXCLUDED.hero_video_opacity,
			hero_text_color = EXCLUDED.hero_text_color,
			hero_text_position = EXCLUDED.hero_text_position,
			hero_title_size = EXCLUDED.hero_title_size,
			hero_image_size = EXCLUDED.hero_image_size,
			hero_image_x = EXCLUDED.hero_image_x,
			hero_image_y = EXCLUDED.hero_image_y,
			stats = EXCLUDED.stats,
			socials = EXCLUDED.socials,
			tools = EXCLUDED.tools,
			contact_email = EXCLUDED.contact_email,
			whatsapp_number = EXCLUDED.whatsapp_number,
			updated_at = EXCLUDED.updated_at`,
		models.SiteConfigID,
		c.LogoText, c.LogoImageURL, c.LogoPosition, c.LogoX, c.LogoY,
		c.FooterDescription, c.HeroTitle, c.HeroSubtitle, c.HeroImageURL,
		c.HeroVideoURL, c.HeroVideoOpacity, c.HeroTextColor,
		c.HeroTextPosition, c.HeroTitleSize, c.HeroImageSize,
		c.HeroImageX, c.HeroImageY, string(stats), string(socials), string(tools),
		c.ContactEmail, c.WhatsappNumber,
	)
	if err != nil {
		return fmt.Errorf("replace site config: %w", err)
	}
	return nil
}
