// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dataservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"datcloude/internal/models"
)

// Session flag keys, shared with the browser client.
const (
	adminKey = "csp_admin"
	userKey  = "csp_user"
	tokenKey = "csp_token"
)

// SessionFlag is the locally persisted login state. It has no expiry and is
// advisory only: it decides which views to show, while the bridge checks the
// token itself on every protected action when running in strict mode.
type SessionFlag struct {
	store Storage
}

// NewSessionFlag binds a flag to the given storage.
func NewSessionFlag(store Storage) *SessionFlag {
	return &SessionFlag{store: store}
}

// Save records a successful login.
func (f *SessionFlag) Save(ctx context.Context, user models.UserDescriptor, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	admin := "false"
	if user.IsAdmin {
		admin = "true"
	}
	if err := f.store.Set(ctx, adminKey, admin); err != nil {
		return err
	}
	if err := f.store.Set(ctx, userKey, string(raw)); err != nil {
		return err
	}
	if token == "" {
		return f.store.Remove(ctx, tokenKey)
	}
	return f.store.Set(ctx, tokenKey, token)
}

// Clear forgets the login. Every key is attempted even if one fails.
func (f *SessionFlag) Clear(ctx context.Context) error {
	var firstErr error
	for _, key := range []string{adminKey, userKey, tokenKey} {
		if err := f.store.Remove(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsAdmin reports the stored admin flag. Storage errors read as false.
func (f *SessionFlag) IsAdmin(ctx context.Context) bool {
	v, ok, err := f.store.Get(ctx, adminKey)
	if err != nil {
		slog.Warn("read session flag", "error", err)
		return false
	}
	return ok && v == "true"
}

// User returns the stored descriptor, or nil when nobody is logged in.
func (f *SessionFlag) User(ctx context.Context) *models.UserDescriptor {
	raw, ok, err := f.store.Get(ctx, userKey)
	if err != nil || !ok {
		return nil
	}
	var u models.UserDescriptor
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.Warn("discarding unreadable session user", "error", err)
		return nil
	}
	return &u
}

// Token returns the stored bearer token or "".
func (f *SessionFlag) Token(ctx context.Context) string {
	v, ok, err := f.store.Get(ctx, tokenKey)
	if err != nil || !ok {
		return ""
	}
	return v
}
