// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory collaborators and a request helper for
// bridge tests, so the dispatcher can be exercised without PostgreSQL or
// Valkey.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"datcloude/internal/cache"
	"datcloude/internal/middleware"
	"datcloude/internal/models"
	"datcloude/internal/session"
	"datcloude/internal/store"
)

const testStudioEmail = "studio@datcloude.test"

// ---------- users ----------

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*models.User)}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Create(_ context.Context, email, password, fullName string, role models.Role) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok {
		return nil, fmt.Errorf("insert user: %w", store.ErrDuplicateEmail)
	}
	u := &models.User{
		ID: uuid.New(), Email: email, FullName: fullName, Role: role,
		PasswordHash: "plain:" + password, CreatedAt: time.Now(),
	}
	f.users[email] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) CheckPassword(u *models.User, password string) bool {
	return u.PasswordHash == "plain:"+password
}

func (f *fakeUsers) SetTOTPSecret(_ context.Context, id uuid.UUID, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.TOTPSecret = &secret
		}
	}
	return nil
}

func (f *fakeUsers) EnableTOTP(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id && u.TOTPSecret != nil {
			u.TOTPEnabled = true
		}
	}
	return nil
}

// ---------- site config ----------

type fakeSite struct {
	mu  sync.Mutex
	cfg *models.SiteConfig
	err error

	// afterRead, when set, runs once after Get has copied the config and
	// before it returns, so a test can land a write in between.
	afterRead func()
}

func (f *fakeSite) Get(context.Context) (*models.SiteConfig, error) {
	f.mu.Lock()
	hook := f.afterRead
	f.afterRead = nil
	var out *models.SiteConfig
	if f.cfg != nil {
		cp := *f.cfg
		out = &cp
	}
	err := f.err
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeSite) Replace(_ context.Context, c *models.SiteConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.cfg = &cp
	return nil
}

// ---------- projects ----------

type fakeProjects struct {
	mu    sync.Mutex
	n     int
	items []models.Project // newest first
}

func (f *fakeProjects) List(context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items), nil
}

func (f *fakeProjects) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	cp := *p
	cp.ApplyDefaults()
	cp.ID = fmt.Sprintf("p%d", f.n)
	cp.Date = time.Now().UTC().Truncate(time.Millisecond)
	f.items = append([]models.Project{cp}, f.items...)
	return &cp, nil
}

func (f *fakeProjects) Update(_ context.Context, id string, patch *models.ProjectPatch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			patch.Apply(&f.items[i])
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = slices.Delete(f.items, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// ---------- messages ----------

type fakeMessages struct {
	mu    sync.Mutex
	n     int
	items []models.Message
}

func (f *fakeMessages) List(context.Context) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items), nil
}

func (f *fakeMessages) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	cp := *m
	cp.ID = fmt.Sprintf("m%d", f.n)
	cp.Date = time.Now().UTC()
	f.items = append([]models.Message{cp}, f.items...)
	return &cp, nil
}

func (f *fakeMessages) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = slices.Delete(f.items, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// ---------- sessions, cache, media, mail ----------

type memSessions struct {
	mu   sync.Mutex
	data map[string]*session.Data
}

func (m *memSessions) Create(_ context.Context, d *session.Data) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	cp := *d
	m.data[id] = &cp
	return id, nil
}

func (m *memSessions) Get(_ context.Context, id string) (*session.Data, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[id], nil
}

func (m *memSessions) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

// fakeCache mirrors cache.ResponseCache: bodies are stored per generation
// and Invalidate advances the generation.
type fakeCache struct {
	mu    sync.Mutex
	gens  map[string]cache.Generation
	items map[string]cachedBody
}

type cachedBody struct {
	gen  cache.Generation
	body []byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{gens: make(map[string]cache.Generation), items: make(map[string]cachedBody)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, cache.Generation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[key]
	if e, ok := c.items[key]; ok && e.gen == gen {
		return e.body, gen, true
	}
	return nil, gen, false
}

func (c *fakeCache) Set(_ context.Context, key string, gen cache.Generation, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < 0 || gen != c.gens[key] {
		return
	}
	c.items[key] = cachedBody{gen: gen, body: body}
}

func (c *fakeCache) Invalidate(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.gens[k]++
	}
}

// has reports whether a body is served for key.
func (c *fakeCache) has(key string) bool {
	_, _, ok := c.Get(context.Background(), key)
	return ok
}

type fakeMedia struct {
	uploads int
	lastCT  string
}

func (m *fakeMedia) Upload(_ context.Context, contentType string, data []byte) (string, error) {
	m.uploads++
	m.lastCT = contentType
	return fmt.Sprintf("https://cdn.datcloude.test/media/%d", m.uploads), nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	leads []models.Message
}

func (n *fakeNotifier) NewLead(m models.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leads = append(n.leads, m)
}

// ---------- environment ----------

type testEnv struct {
	handler  http.Handler
	users    *fakeUsers
	site     *fakeSite
	projects *fakeProjects
	messages *fakeMessages
	cache    *fakeCache
	media    *fakeMedia
	leads    *fakeNotifier
}

type envOption func(*Config)

func withLegacyAuth() envOption { return func(c *Config) { c.Strict = false } }
func withoutMedia() envOption   { return func(c *Config) { c.Media = nil } }
func withLimiter(rl *middleware.RateLimiter) envOption {
	return func(c *Config) { c.Limiter = rl }
}

// newTestEnv builds a strict-mode bridge wrapped in LoadSession, the way
// the router mounts it.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    newFakeUsers(),
		site:     &fakeSite{},
		projects: &fakeProjects{},
		messages: &fakeMessages{},
		cache:    newFakeCache(),
		media:    &fakeMedia{},
		leads:    &fakeNotifier{},
	}
	sessions := session.NewManager(
		&memSessions{data: make(map[string]*session.Data)},
		session.NewIssuer("test-secret", time.Hour, false),
	)
	cfg := Config{
		Users:       env.users,
		Site:        env.site,
		Projects:    env.projects,
		Messages:    env.messages,
		Sessions:    sessions,
		Cache:       env.cache,
		Media:       env.media,
		Notifier:    env.leads,
		StudioEmail: testStudioEmail,
		Strict:      true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	env.handler = middleware.LoadSession(sessions)(New(cfg))
	return env
}

// do sends a bridge request. body may be nil, a string (sent raw) or any
// value (JSON-encoded). token, when set, is sent as a bearer header.
func (e *testEnv) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// signUp registers and logs in, returning the bearer token.
func (e *testEnv) signUp(t *testing.T, email, password string) string {
	t.Helper()
	if rr := e.do(t, "POST", "/api?action=register", map[string]string{
		"email": email, "password": password, "fullName": "Test " + email,
	}, ""); rr.Code != http.StatusOK {
		t.Fatalf("register %s: %d %s", email, rr.Code, rr.Body)
	}
	rr := e.do(t, "POST", "/api?action=login", map[string]string{"email": email, "password": password}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rr.Code, rr.Body)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rr, &out)
	return out.Token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	return e.signUp(t, testStudioEmail, "admin-pass")
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]any
	decode(t, rr, &out)
	msg, _ := out["error"].(string)
	return msg
}
