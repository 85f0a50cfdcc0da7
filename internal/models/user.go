// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RoleForEmail derives the role for a new registration. Only the studio
// address becomes an admin; the role is never changed afterwards.
func RoleForEmail(email, studioEmail string) Role {
	if studioEmail != "" && strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(studioEmail)) {
		return RoleAdmin
	}
	return RoleUser
}

// User represents an account with a bcrypt password hash and optional 2FA.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totpEnabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Descriptor returns the public user shape the bridge sends on login.
func (u *User) Descriptor() UserDescriptor {
	return UserDescriptor{
		Name:    u.FullName,
		Email:   u.Email,
		IsAdmin: u.IsAdmin(),
	}
}

// UserDescriptor is the user summary returned by login and cached by clients.
type UserDescriptor struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
