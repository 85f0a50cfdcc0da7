// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"datcloude/internal/cache"
	"datcloude/internal/models"
	"datcloude/internal/session"
)

// UserRepository is the subset of store.UserStore the bridge needs.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, email, password, fullName string, role models.Role) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
	SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, userID uuid.UUID) error
}

// ConfigRepository reads and replaces the singleton site configuration.
type ConfigRepository interface {
	Get(ctx context.Context) (*models.SiteConfig, error)
	Replace(ctx context.Context, c *models.SiteConfig) error
}

// ProjectRepository persists portfolio projects. Update and Delete report
// whether a row matched.
type ProjectRepository interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, id string, patch *models.ProjectPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MessageRepository persists contact-form messages.
type MessageRepository interface {
	List(ctx context.Context) ([]models.Message, error)
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionManager starts and ends server-side sessions.
type SessionManager interface {
	Start(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// ResponseCache caches serialized read responses. Get reports the key's
// current generation even on a miss; Set stores a body only for the
// generation it was loaded under, and Invalidate advances it.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, cache.Generation, bool)
	Set(ctx context.Context, key string, gen cache.Generation, body []byte)
	Invalidate(ctx context.Context, keys ...string)
}

// MediaUploader stores uploaded media and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, contentType string, data []byte) (string, error)
}

// LeadNotifier is told about every new contact-form message.
type LeadNotifier interface {
	NewLead(msg models.Message)
}
