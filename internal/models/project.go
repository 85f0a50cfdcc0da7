// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ProjectStatus is the publishing state of a portfolio entry.
type ProjectStatus string

const (
	StatusPublished ProjectStatus = "Published"
	StatusDraft     ProjectStatus = "Draft"
	StatusFeatured  ProjectStatus = "Featured"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPublished, StatusDraft, StatusFeatured:
		return true
	}
	return false
}

// Project is a portfolio entry. The ID and Date are assigned by the bridge
// on creation and never change afterwards.
type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	Tags         []string      `json:"tags"`
	ThumbnailURL string        `json:"thumbnailUrl"`
	MediaURL     string        `json:"mediaUrl"`
	Tools        []string      `json:"tools"`
	Status       ProjectStatus `json:"status"`
	Price        *float64      `json:"price,omitempty"`
	Date         time.Time     `json:"date"`
	Client       string        `json:"client,omitempty"`
	LiveURL      string        `json:"liveUrl,omitempty"`
	GithubURL    string        `json:"githubUrl,omitempty"`
}

// IsFeatured returns true if the project is highlighted on the home page.
func (p *Project) IsFeatured() bool {
	return p.Status == StatusFeatured
}

// ApplyDefaults fills the fields the bridge defaults on creation.
func (p *Project) ApplyDefaults() {
	if p.Title == "" {
		p.Title = "Untitled"
	}
	if p.Category == "" {
		p.Category = CategoryVideoEditing
	}
	if p.Status == "" {
		p.Status = StatusPublished
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Tools == nil {
		p.Tools = []string{}
	}
}

// ProjectPatch carries a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Title        *string        `json:"title,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Category     *Category      `json:"category,omitempty"`
	Tags         *[]string      `json:"tags,omitempty"`
	ThumbnailURL *string        `json:"thumbnailUrl,omitempty"`
	MediaURL     *string        `json:"mediaUrl,omitempty"`
	Tools        *[]string      `json:"tools,omitempty"`
	Status       *ProjectStatus `json:"status,omitempty"`
	Price        *float64       `json:"price,omitempty"`
	Client       *string        `json:"client,omitempty"`
	LiveURL      *string        `json:"liveUrl,omitempty"`
	GithubURL    *string        `json:"githubUrl,omitempty"`
}

// DropBlankEnums treats an empty category or status as absent, so a cleared
// form field never overwrites a stored value.
func (p *ProjectPatch) DropBlankEnums() {
	if p.Category != nil && *p.Category == "" {
		p.Category = nil
	}
	if p.Status != nil && *p.Status == "" {
		p.Status = nil
	}
}

// Empty reports whether the patch changes nothing.
func (p *ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Tags == nil && p.ThumbnailURL == nil && p.MediaURL == nil &&
		p.Tools == nil && p.Status == nil && p.Price == nil &&
		p.Client == nil && p.LiveURL == nil && p.GithubURL == nil
}

// Apply copies the supplied fields onto dst.
func (p *ProjectPatch) Apply(dst *Project) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Tags != nil {
		dst.Tags = *p.Tags
	}
	if p.ThumbnailURL != nil {
		dst.ThumbnailURL = *p.ThumbnailURL
	}
	if p.MediaURL != nil {
		dst.MediaURL = *p.MediaURL
	}
	if p.Tools != nil {
		dst.Tools = *p.Tools
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Price != nil {
		price := *p.Price
		dst.Price = &price
	}
	if p.Client != nil {
		dst.Client = *p.Client
	}
	if p.LiveURL != nil {
		dst.LiveURL = *p.LiveURL
	}
	if p.GithubURL != nil {
		dst.GithubURL = *p.GithubURL
	}
}
