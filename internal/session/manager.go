// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Backend persists session payloads. *Store is the production implementation.
type Backend interface {
	Create(ctx context.Context, data *Data) (string, error)
	Get(ctx context.Context, id string) (*Data, error)
	Destroy(ctx context.Context, id string) error
}

// Manager ties server-side sessions to the signed tokens handed to clients.
type Manager struct {
	backend Backend
	issuer  *Issuer
}

// NewManager creates a session manager.
func NewManager(backend Backend, issuer *Issuer) *Manager {
	return &Manager{backend: backend, issuer: issuer}
}

// Start creates a session for data, sets the session cookie and returns the
// bearer token for clients that keep it themselves.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := m.backend.Create(ctx, data)
	if err != nil {
		return "", err
	}
	token, err := m.issuer.Issue(id, data)
	if err != nil {
		m.backend.Destroy(ctx, id)
		return "", fmt.Errorf("session start: %w", err)
	}
	m.issuer.SetCookie(w, token)
	return token, nil
}

// Resolve returns the live session named by the request's token. A missing,
// malformed or expired token, or one whose server session is gone, yields
// (nil, nil). Only backend failures are returned as errors.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Data, error) {
	claims, ok := m.claims(r)
	if !ok {
		return nil, nil
	}
	data, err := m.backend.Get(ctx, claims.SessionID)
	if err != nil || data == nil {
		return nil, err
	}
	if data.UserID.String() != claims.Subject {
		slog.Warn("session token subject mismatch", "sid", claims.SessionID)
		return nil, nil
	}
	return data, nil
}

// End destroys the request's server session, if any, and clears the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	m.issuer.ClearCookie(w)
	claims, ok := m.claims(r)
	if !ok {
		return nil
	}
	return m.backend.Destroy(ctx, claims.SessionID)
}

func (m *Manager) claims(r *http.Request) (*Claims, bool) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, false
	}
	claims, err := m.issuer.Parse(token)
	if err != nil {
		if !errors.Is(err, ErrInvalidToken) {
			slog.Warn("session token parse error", "error", err)
		}
		return nil, false
	}
	return claims, true
}
