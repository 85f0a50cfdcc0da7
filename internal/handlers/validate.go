// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"datcloude/internal/models"
)

// Validation limits for bridge payloads.
const (
	maxNameLen        = 200
	maxEmailLen       = 320
	maxPasswordLen    = 72 // bcrypt ignores anything longer
	maxTitleLen       = 300
	maxDescriptionLen = 10_000
	maxContentLen     = 10_000
	maxUploadBytes    = 25 << 20
)

// validateRegistration checks a register payload and returns the first error found.
func validateRegistration(email, password, fullName string) string {
	if email == "" || password == "" {
		return "Email and password are required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen || !strings.Contains(email, "@") {
		return "Please enter a valid email address."
	}
	if len(password) > maxPasswordLen {
		return "Password is too long (max 72 bytes)."
	}
	if utf8.RuneCountInString(fullName) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateProject checks the supplied fields of a project payload. Blank
// category and status values are dropped first.
func validateProject(p *models.ProjectPatch) string {
	p.DropBlankEnums()
	if p.Title != nil && utf8.RuneCountInString(*p.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if p.Description != nil && utf8.RuneCountInString(*p.Description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)."
	}
	if p.Category != nil && !p.Category.Valid() {
		return "Invalid category."
	}
	if p.Status != nil && !p.Status.Valid() {
		return "Invalid status."
	}
	if p.Price != nil && *p.Price < 0 {
		return "Price cannot be negative."
	}
	return ""
}

// validateMessage checks a contact-form payload. Fields may be empty.
func validateMessage(m *messageInput) string {
	if utf8.RuneCountInString(m.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(m.Email) > maxEmailLen {
		return "Email is too long."
	}
	if utf8.RuneCountInString(m.Service) > maxNameLen {
		return "Service is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(m.Content) > maxContentLen {
		return "Message is too long (max 10,000 characters)."
	}
	return ""
}

// validateUpload checks a decoded data-URI upload.
func validateUpload(contentType string, data []byte) string {
	if len(data) == 0 {
		return "Upload is empty."
	}
	if len(data) > maxUploadBytes {
		return "Upload is too large (max 25 MB)."
	}
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return "Only image and video uploads are supported."
	}
	return ""
}
