// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dataservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"datcloude/internal/media"
	"datcloude/internal/models"
)

// Service is the data access layer used by views and tools. Reads of the
// site configuration never fail; list reads degrade to cached or empty
// lists; writes return the bridge's error with its message intact.
type Service struct {
	client *Client
	store  Storage
	flag   *SessionFlag
	now    func() time.Time
}

// NewService creates a service that talks to endpoint and keeps its
// fallback cache and session flag in store. The stored bearer token is sent
// with every call.
func NewService(endpoint string, store Storage, opts ...ClientOption) *Service {
	s := &Service{
		store: store,
		flag:  NewSessionFlag(store),
		now:   time.Now,
	}
	opts = append(opts, WithTokenSource(func() string {
		return s.flag.Token(context.Background())
	}))
	s.client = NewClient(endpoint, opts...)
	return s
}

// Session exposes the locally persisted login state.
func (s *Service) Session() *SessionFlag { return s.flag }

type loginResponse struct {
	User  models.UserDescriptor `json:"user"`
	Token string                `json:"token"`
}

// Login authenticates and stores the session flag.
func (s *Service) Login(ctx context.Context, email, password string) (models.UserDescriptor, error) {
	return s.login(ctx, email, password, "")
}

// LoginWithCode authenticates an account that has two-factor auth enabled.
func (s *Service) LoginWithCode(ctx context.Context, email, password, code string) (models.UserDescriptor, error) {
	return s.login(ctx, email, password, code)
}

func (s *Service) login(ctx context.Context, email, password, code string) (models.UserDescriptor, error) {
	body := map[string]string{"email": email, "password": password}
	if code != "" {
		body["code"] = code
	}
	var resp loginResponse
	if err := s.client.Call(ctx, "login", http.MethodPost, nil, body, &resp); err != nil {
		return models.UserDescriptor{}, err
	}
	if err := s.flag.Save(ctx, resp.User, resp.Token); err != nil {
		return models.UserDescriptor{}, fmt.Errorf("save session flag: %w", err)
	}
	return resp.User, nil
}

// Signup registers a new account. It does not log in.
func (s *Service) Signup(ctx context.Context, email, password, fullName string) error {
	body := map[string]string{"email": email, "password": password, "fullName": fullName}
	return s.client.Call(ctx, "register", http.MethodPost, nil, body, nil)
}

// Logout revokes the server session and always clears the local flag.
func (s *Service) Logout(ctx context.Context) error {
	callErr := s.client.Call(ctx, "logout", http.MethodPost, nil, nil, nil)
	if callErr != nil {
		slog.Warn("bridge logout failed", "error", callErr)
	}
	if err := s.flag.Clear(ctx); err != nil {
		return fmt.Errorf("clear session flag: %w", err)
	}
	return nil
}

// GetConfig returns the site configuration merged over the defaults. When
// the bridge fails it falls back to the last mirrored record and then to
// DefaultConfig.
func (s *Service) GetConfig(ctx context.Context) models.SiteConfig {
	var raw json.RawMessage
	err := s.client.Call(ctx, "get_config", http.MethodGet, nil, nil, &raw)
	if err == nil {
		cfg, mergeErr := mergeConfig(raw)
		if mergeErr == nil {
			s.mirror(ctx, ConfigCacheKey, cfg)
			return cfg
		}
		err = mergeErr
	}

	slog.Warn("config fetch failed, using fallback", "error", err)
	return s.cachedConfig(ctx)
}

func (s *Service) cachedConfig(ctx context.Context) models.SiteConfig {
	raw, ok, err := s.store.Get(ctx, ConfigCacheKey)
	if err != nil {
		slog.Warn("read config cache", "error", err)
		return DefaultConfig()
	}
	if !ok {
		return DefaultConfig()
	}
	cfg, err := mergeConfig([]byte(raw))
	if err != nil {
		slog.Warn("discarding unreadable config cache", "error", err)
		return DefaultConfig()
	}
	return cfg
}

// UpdateConfig replaces the stored configuration and, on success, the local
// mirror.
func (s *Service) UpdateConfig(ctx context.Context, cfg models.SiteConfig) error {
	if err := s.client.Call(ctx, "update_config", http.MethodPost, nil, cfg, nil); err != nil {
		return err
	}
	s.mirror(ctx, ConfigCacheKey, cfg)
	return nil
}

// GetProjects returns every project, newest first. On failure it returns
// the last mirrored list, or an empty one.
func (s *Service) GetProjects(ctx context.Context) []models.Project {
	var projects []models.Project
	err := s.client.Call(ctx, "get_projects", http.MethodGet, nil, nil, &projects)
	if err == nil {
		if projects == nil {
			projects = []models.Project{}
		}
		s.mirror(ctx, ProjectsCacheKey, projects)
		return projects
	}

	slog.Warn("project fetch failed, using fallback", "error", err)
	raw, ok, cacheErr := s.store.Get(ctx, ProjectsCacheKey)
	if cacheErr != nil || !ok {
		return []models.Project{}
	}
	var cached []models.Project
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || cached == nil {
		return []models.Project{}
	}
	return cached
}

// GetFeaturedProjects returns the projects with Featured status.
func (s *Service) GetFeaturedProjects(ctx context.Context) []models.Project {
	return filterProjects(s.GetProjects(ctx), func(p *models.Project) bool {
		return p.IsFeatured()
	})
}

// GetProjectsByCategory returns the projects in category c.
func (s *Service) GetProjectsByCategory(ctx context.Context, c models.Category) []models.Project {
	return filterProjects(s.GetProjects(ctx), func(p *models.Project) bool {
		return p.Category == c
	})
}

// GetProjectByID returns the first project with the given id, or nil.
func (s *Service) GetProjectByID(ctx context.Context, id string) *models.Project {
	for _, p := range s.GetProjects(ctx) {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func filterProjects(all []models.Project, keep func(*models.Project) bool) []models.Project {
	out := []models.Project{}
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}

// AddProject creates a project. The returned copy carries the id assigned by
// the bridge and a local timestamp.
func (s *Service) AddProject(ctx context.Context, p models.Project) (models.Project, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.client.Call(ctx, "add_project", http.MethodPost, nil, projectPayload(&p), &resp); err != nil {
		return models.Project{}, err
	}
	p.ID = resp.ID
	p.Date = s.now().UTC()
	return p, nil
}

// projectPayload leaves out the fields the bridge assigns.
func projectPayload(p *models.Project) models.ProjectPatch {
	return models.ProjectPatch{
		Title:        &p.Title,
		Description:  &p.Description,
		Category:     &p.Category,
		Tags:         &p.Tags,
		ThumbnailURL: &p.ThumbnailURL,
		MediaURL:     &p.MediaURL,
		Tools:        &p.Tools,
		Status:       &p.Status,
		Price:        p.Price,
		Client:       &p.Client,
		LiveURL:      &p.LiveURL,
		GithubURL:    &p.GithubURL,
	}
}

// UpdateProject sends a partial update. The bridge reports success even
// when id does not exist.
func (s *Service) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) error {
	return s.client.Call(ctx, "update_project", http.MethodPost, url.Values{"id": {id}}, patch, nil)
}

// DeleteProject removes a project. Deleting an unknown id succeeds.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.client.Call(ctx, "delete_project", http.MethodDelete, url.Values{"id": {id}}, nil, nil)
}

// GetMessages returns the contact inbox, newest first, or an empty list
// when the bridge fails.
func (s *Service) GetMessages(ctx context.Context) []models.Message {
	var msgs []models.Message
	if err := s.client.Call(ctx, "get_messages", http.MethodGet, nil, nil, &msgs); err != nil {
		slog.Warn("message fetch failed", "error", err)
		return []models.Message{}
	}
	if msgs == nil {
		return []models.Message{}
	}
	return msgs
}

// AddMessage submits a contact-form message.
func (s *Service) AddMessage(ctx context.Context, m models.Message) error {
	body := map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"service": m.Service,
		"content": m.Content,
	}
	return s.client.Call(ctx, "add_message", http.MethodPost, nil, body, nil)
}

// DeleteMessage archives a message. Deleting an unknown id succeeds.
func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	return s.client.Call(ctx, "delete_message", http.MethodDelete, url.Values{"id": {id}}, nil, nil)
}

// UploadMedia stores a data: URI on the bridge's media bucket and returns
// its public URL.
func (s *Service) UploadMedia(ctx context.Context, dataURI string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	body := map[string]string{"dataUri": dataURI}
	if err := s.client.Call(ctx, "upload_media", http.MethodPost, nil, body, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// TransformDriveURL rewrites cloud-drive share links to direct downloads.
func (s *Service) TransformDriveURL(raw string) string {
	return media.NormalizeURL(raw)
}

// mirror writes v to the fallback cache. Failures are logged only.
func (s *Service) mirror(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("encode fallback cache", "key", key, "error", err)
		return
	}
	if err := s.store.Set(ctx, key, string(raw)); err != nil {
		slog.Warn("write fallback cache", "key", key, "error", err)
	}
}
