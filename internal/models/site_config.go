// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteConfigID is the fixed primary key of the singleton site_config row.
const SiteConfigID = 1

// Stats feeds the animated counters on the home page.
type Stats struct {
	Projects int `json:"projects"`
	Clients  int `json:"clients"`
	Years    int `json:"years"`
}

// Tool is an entry of the "tools we use" strip.
type Tool struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SiteConfig is the singleton record holding the site's branding and hero
// section. Writes replace the whole record; callers merge before writing.
type SiteConfig struct {
	LogoText          string            `json:"logoText"`
	LogoImageURL      string            `json:"logoImageUrl"`
	LogoPosition      string            `json:"logoPosition"`
	LogoX             int               `json:"logoX"`
	LogoY             int               `json:"logoY"`
	FooterDescription string            `json:"footerDescription"`
	HeroTitle         string            `json:"heroTitle"`
	HeroSubtitle      string            `json:"heroSubtitle"`
	HeroImageURL      string            `json:"heroImageUrl"`
	HeroVideoURL      string            `json:"heroVideoUrl"`
	HeroVideoOpacity  int               `json:"heroVideoOpacity"`
	HeroTextColor     string            `json:"heroTextColor"`
	HeroTextPosition  string            `json:"heroTextPosition"`
	HeroTitleSize     float64           `json:"heroTitleSize"`
	HeroImageSize     int               `json:"heroImageSize"`
	HeroImageX        int               `json:"heroImageX"`
	HeroImageY        int               `json:"heroImageY"`
	Stats             Stats             `json:"stats"`
	Socials           map[string]string `json:"socials"`
	Tools             []Tool            `json:"tools"`
	ContactEmail      string            `json:"contactEmail"`
	WhatsappNumber    string            `json:"whatsappNumber"`
}

// DefaultSiteConfig returns the built-in record shown when the bridge has
// nothing (or is unreachable) and used to fill keys missing from a payload.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		LogoText:          "DAT CLOUDE",
		LogoPosition:      "left",
		FooterDescription: "A high-end portfolio and service-based e-commerce platform for creative professionals.",
		HeroTitle:         "DESIGNING THE FUTURE OF DIGITAL EXPERIENCES.",
		HeroSubtitle:      "We turn bold ideas into high-converting solutions.",
		HeroVideoOpacity:  100,
		HeroTextColor:     "#ffffff",
		HeroTextPosition:  "left",
		HeroTitleSize:     6.8,
		HeroImageSize:     90,
		Stats:             Stats{Projects: 120, Clients: 45, Years: 8},
		Socials: map[string]string{
			"instagram": "#",
			"linkedin":  "#",
		},
		Tools:        []Tool{},
		ContactEmail: "datcloud20@gmail.com",
	}
}

// SiteConfigWriteDefaults returns the values the bridge stores for fields
// absent from an update_config payload. Unlike DefaultSiteConfig, text
// fields default to empty.
func SiteConfigWriteDefaults(studioEmail string) SiteConfig {
	return SiteConfig{
		LogoPosition:     "left",
		HeroVideoOpacity: 100,
		HeroTextColor:    "#ffffff",
		HeroTextPosition: "left",
		HeroTitleSize:    6.8,
		HeroImageSize:    90,
		Socials:          map[string]string{},
		Tools:            []Tool{},
		ContactEmail:     studioEmail,
	}
}

// Normalize replaces nil collections with empty ones so the stored JSON
// columns never hold null.
func (c *SiteConfig) Normalize() {
	if c.Socials == nil {
		c.Socials = map[string]string{}
	}
	if c.Tools == nil {
		c.Tools = []Tool{}
	}
}
